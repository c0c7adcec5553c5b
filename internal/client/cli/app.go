package cli

import (
	"bufio"
	"os"

	"github.com/amitEt25/aiven-auth-assigment/internal/client"
	"github.com/amitEt25/aiven-auth-assigment/internal/client/config"
)

type App struct {
	config *config.Config
	api    *client.Client
	email  string
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	api := client.New(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}
