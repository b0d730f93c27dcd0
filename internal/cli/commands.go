package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/userregistry/internal/common"
	"github.com/dmitrijs2005/userregistry/internal/registry"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Create prompts for an email and a password and registers the user.
// The password buffer is wiped before returning.
func (a *App) Create(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.registry.CreateUser(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created user %s\n", user.ID)
	return nil
}

// Get prints the user with the given id, or "not found".
func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <id>: %w", common.ErrorMissingArgs)
	}
	user, ok := a.registry.GetUserByID(args[0])
	a.printLookup(user, ok)
	return nil
}

// Find prints the first user registered with the given email.
func (a *App) Find(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: find <email>: %w", common.ErrorMissingArgs)
	}
	user, ok := a.registry.GetUserByEmail(args[0])
	a.printLookup(user, ok)
	return nil
}

// Verify prompts for a password and checks it against the stored hash.
func (a *App) Verify(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: verify <id>: %w", common.ErrorMissingArgs)
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if a.registry.VerifyPassword(ctx, args[0], string(password)) {
		fmt.Fprintln(a.out, "Password OK")
	} else {
		fmt.Fprintln(a.out, "Password rejected")
	}
	return nil
}

func (a *App) Count(ctx context.Context) error {
	fmt.Fprintln(a.out, a.registry.Len())
	return nil
}

func (a *App) List(ctx context.Context) error {
	for _, u := range a.registry.Users() {
		a.printUser(u)
	}
	return nil
}

// Total parses every argument as a price and prints their sum.
func (a *App) Total(ctx context.Context, args []string) error {
	items := make([]registry.Item, 0, len(args))
	for _, arg := range args {
		price, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, common.ErrorInvalidPrice)
		}
		items = append(items, registry.Item{Price: price})
	}

	fmt.Fprintln(a.out, strconv.FormatFloat(registry.CalculateTotalPrice(items), 'f', -1, 64))
	return nil
}

func (a *App) Token(ctx context.Context) error {
	fmt.Fprintln(a.out, registry.GenerateToken())
	return nil
}

func (a *App) printLookup(u *registry.User, ok bool) {
	if !ok {
		fmt.Fprintln(a.out, "not found")
		return
	}
	a.printUser(u)
}

func (a *App) printUser(u *registry.User) {
	fmt.Fprintf(a.out, "%s\t%s\t%s\n", u.ID, u.Email, u.CreatedAt.Format(time.RFC3339))
}
