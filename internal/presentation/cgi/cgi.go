// Package cgi serves a single upload over the CGI protocol: request metadata
// from the environment, the body from stdin and the response on stdout.
package cgi

import (
	"encoding/json"
	"net/http"
	"net/http/cgi"
	"os"

	"github.com/labstack/echo/v4"

	"uploadgate/internal/presentation/handler"
)

const defaultProtocol = "HTTP/1.1"

// Handler runs upload for whatever path the CGI request names. Responses
// are indented JSON.
func Handler(upload *handler.UploadHandler) http.Handler {
	e := echo.New()
	e.JSONSerializer = indentSerializer{}
	e.Logger.SetOutput(os.Stderr)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := e.NewContext(r, w)
		if err := upload.Handle(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
	})
}

// Serve handles the request described by the process environment. Servers
// that omit SERVER_PROTOCOL are assumed to speak HTTP/1.1.
func Serve(upload *handler.UploadHandler) error {
	if os.Getenv("SERVER_PROTOCOL") == "" {
		if err := os.Setenv("SERVER_PROTOCOL", defaultProtocol); err != nil {
			return err
		}
	}

	return cgi.Serve(Handler(upload))
}

type indentSerializer struct{}

func (indentSerializer) Serialize(c echo.Context, i any, _ string) error {
	enc := json.NewEncoder(c.Response())
	enc.SetIndent("", "  ")

	return enc.Encode(i)
}

func (indentSerializer) Deserialize(c echo.Context, i any) error {
	return echo.DefaultJSONSerializer{}.Deserialize(c, i)
}
