package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	appUser "github.com/NeuralTrust/Gatekeeper/pkg/app/user"
	domainUser "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/spf13/pflag"
)

const registerCommandName = "register"

var errRegisterAborted = errors.New("registration aborted")

// registerCommand creates an administrator account from the command line.
type registerCommand struct {
	creator appUser.Creator
	in      io.Reader
	out     io.Writer
}

func (r *registerCommand) Run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet(registerCommandName, pflag.ContinueOnError)
	fs.SetOutput(r.out)
	lastname := fs.String("lastname", "", "administrator lastname")
	firstname := fs.String("firstname", "", "administrator firstname")
	username := fs.String("username", "", "administrator email, used to log in")
	password := fs.String("password", "", "administrator password")
	yes := fs.BoolP("yes", "y", false, "create the account without asking for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := domainUser.NewAdminInput(*lastname, *firstname, *username, *password)
	if err != nil {
		return err
	}

	if !*yes && !r.confirm(in) {
		return errRegisterAborted
	}

	created, err := r.creator.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	_, _ = fmt.Fprintf(r.out, "administrator %s created with id %s\n", created.Username, created.ID)
	return nil
}

// confirm defaults to yes on an empty answer; a closed input counts as no.
func (r *registerCommand) confirm(in domainUser.Input) bool {
	_, _ = fmt.Fprintf(r.out, "Create administrator %s %s <%s>? (Y/n) ", in.Firstname, in.Lastname, in.Username)
	answer, err := bufio.NewReader(r.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}
