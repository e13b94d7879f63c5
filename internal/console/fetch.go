package console

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/eduinsight/console-client/internal/core/ports"
)

// batch runs fns concurrently and waits for every one of them to settle
// before returning the first error. Actions render nothing until batch
// returns, so a failed member can never produce a partial view.
func batch(ctx context.Context, fns ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error { return fn(ctx) })
	}
	return g.Wait()
}

// getJSON performs a GET and decodes the envelope's data field into out.
func getJSON(ctx context.Context, gw ports.Gateway, path string, out any) error {
	env, err := gw.Call(ctx, http.MethodGet, path, ports.CallOptions{})
	if err != nil {
		return err
	}
	return env.Decode(out)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
