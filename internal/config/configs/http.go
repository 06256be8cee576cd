package configs

// HTTP defines configuration for the HTTP server. The Port specifies which
// port the server will bind to. MaxUploadBytes caps the total size of one
// multipart upload (export plus tag workbooks).
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// MaxUploadBytes limits the request body size for upload endpoints.
	// Defaults to 32 MiB.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`
}
