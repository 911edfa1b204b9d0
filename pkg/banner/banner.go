package banner

import "fmt"

const banner = `
████████╗██╗  ██╗██████╗ ███████╗ █████╗ ██████╗ ██████╗ ██████╗
╚══██╔══╝██║  ██║██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔══██╗██╔══██╗
   ██║   ███████║██████╔╝█████╗  ███████║██║  ██║██║  ██║██████╔╝
   ██║   ██╔══██║██╔══██╗██╔══╝  ██╔══██║██║  ██║██║  ██║██╔══██╗
   ██║   ██║  ██║██║  ██║███████╗██║  ██║██████╔╝██████╔╝██████╔╝
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚═════╝ ╚═════╝
`

// Print writes the startup banner with the effective runtime settings.
func Print(addr, dbPath, sources, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	if sources != "" {
		fmt.Printf("Config sources: %s\n", sources)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET  /?page=<n>      - Thread listing, newest activity first")
	fmt.Println("GET  /thread/{id}    - One thread with its replies")
	fmt.Println("POST /thread         - Create a thread (multipart: title, message, image)")
	fmt.Println("POST /reply          - Reply to a thread (form: parent_id, message)")
	fmt.Println("GET  /metrics        - Prometheus metrics")
	fmt.Println("\n== Production? =================================================")
	fmt.Println("Set a proper storage path (--db)")
	fmt.Println("Put a reverse proxy with TLS in front, or configure server.tls")
}
