package commands

import (
	"uploadgate/internal/presentation/cgi"
	"uploadgate/pkg/logger"
)

// HandleCGI serves one upload described by the CGI environment. Logs must
// not go to stdout, which carries the response.
func HandleCGI(args []string) {
	cfg := loadConfig(args)

	a, err := build(cfg)
	if err != nil {
		ExitOnError(err)
	}
	defer a.close()

	logger.Debug("handling cgi upload", "version", version(), "dir", a.store.Dir())

	if err := cgi.Serve(a.routes.Upload); err != nil {
		a.close()
		ExitOnError(err)
	}
}
