// Package shell is a line-oriented front end to a storefront session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/collaborator"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"go.uber.org/zap"
)

const help = `commands:
  go <location>          navigate (/, /cart, /checkout, /orders)
  add <product-id> [qty] add a product to the cart
  inc <product-id>       increase quantity
  dec <product-id>       decrease quantity
  rm <product-id>        remove from the cart
  clear                  empty the cart
  checkout               proceed to checkout
  order                  place the order
  refresh                reload the current page
  view                   show the current page
  help                   this text
  quit                   leave`

var errQuit = errors.New("quit")

type Shell struct {
	session *storefront.Session
	in      io.Reader
	out     io.Writer
	log     *zap.Logger
}

func New(session *storefront.Session, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{session: session, in: in, out: out, log: log}
}

// Run reads commands until quit, end of input or ctx is done.
func (sh *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(sh.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	sh.show()
	for {
		fmt.Fprint(sh.out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			if err := sh.Exec(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Fprintf(sh.out, "error: %s\n", collaborator.Message(err))
			}
		}
	}
}

// Exec runs one command line.
func (sh *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	sh.log.Debug("command", zap.String("cmd", cmd), zap.Strings("args", args))

	switch cmd {
	case "go":
		location := "/"
		if len(args) > 0 {
			location = args[0]
		}
		sh.session.Navigate(location)
		sh.show()
	case "add":
		id, err := productArg(args)
		if err != nil {
			return err
		}
		qty := 1
		if len(args) > 1 {
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
		}
		if err := sh.session.AddToCart(ctx, id, qty); err != nil {
			return err
		}
		sh.show()
	case "inc", "dec", "rm":
		id, err := productArg(args)
		if err != nil {
			return err
		}
		switch cmd {
		case "inc":
			err = sh.session.Increment(id)
		case "dec":
			err = sh.session.Decrement(id)
		default:
			sh.session.Remove(id)
		}
		if err != nil {
			return err
		}
		sh.show()
	case "clear":
		sh.session.ClearCart()
		sh.show()
	case "checkout":
		sh.session.ProceedToCheckout()
		sh.show()
	case "order":
		if _, err := sh.session.PlaceOrder(ctx); err != nil {
			return err
		}
		sh.show()
	case "refresh":
		sh.session.Refresh(ctx)
		sh.show()
	case "view":
		sh.show()
	case "help":
		fmt.Fprintln(sh.out, help)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (sh *Shell) show() {
	sh.session.Settle()
	Render(sh.out, sh.session.View())
}

func productArg(args []string) (domain.ID, error) {
	if len(args) == 0 {
		return domain.ID{}, errors.New("missing product id")
	}
	return domain.ParseID(args[0]), nil
}
