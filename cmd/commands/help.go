package commands

import "fmt"

const help = `uploadgate %s

usage:
  uploadgate run <config.yml>      serve uploads over HTTP
  uploadgate cgi <config.yml>      handle one upload as a CGI script
  uploadgate events <config.yml>   print upload events from the broker
  uploadgate version               print the version
  uploadgate help                  print this message
`

func HandleHelp(_ []string) {
	fmt.Printf(help, version()) //nolint
}
