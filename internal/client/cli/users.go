package cli

import (
	"context"
	"fmt"
)

// Profile fetches and prints the authenticated user's own record.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d  %s  %s %s  (registered %s)\n",
		user.ID, user.Email, user.FirstName, user.LastName,
		user.CreatedAt.Format("2006-01-02"))
	return nil
}

// Users fetches and prints the list of registered users, newest first.
func (a *App) Users(ctx context.Context) error {
	list, err := a.api.Users(ctx)
	if err != nil {
		return err
	}

	for _, user := range list {
		fmt.Printf("%d  %s  %s %s\n", user.ID, user.Email, user.FirstName, user.LastName)
	}
	fmt.Printf("%d user(s)\n", len(list))
	return nil
}
