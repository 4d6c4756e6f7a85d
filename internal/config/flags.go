package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

const defaultPort = "8000"

var (
	Dev     bool
	LogPath string
	Addr    string
	Remote  string
	Serve   bool
)

func Init() {
	// .env is optional
	_ = godotenv.Load()

	flag.BoolVar(&Dev, "dev", false, "Development mode")
	flag.StringVar(&LogPath, "logPath", "", "Path to save the log file")
	flag.StringVar(&Addr, "addr", ":"+Getenv("PORT", defaultPort), "Address the embedded chat server listens on")
	flag.StringVar(&Remote, "remote", "", "Base URL of an already running chat server; disables the embedded one")
	flag.BoolVar(&Serve, "serve", false, "Run only the chat server, without the terminal UI")
	flag.Parse()
}

// Getenv returns the value of key, or def when it is unset or empty.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ServerURL is the base URL the terminal client talks to.
func ServerURL() string {
	if Remote != "" {
		return Remote
	}
	return LocalURL(Addr)
}
