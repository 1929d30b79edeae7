// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command porthost drives a port host over JSON lines: commands on stdin,
// events on stdout, logs on stderr. It is a debugging harness.
//
//	echo '{"tag":"effect","kind":"random","operation":"uuid"}' | porthost
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/port"
	"code.hybscloud.com/port/boot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// pollInterval paces the loop while handlers are running and stdin is quiet.
const pollInterval = 2 * time.Millisecond

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "porthost",
		Short:         "Run a port host over JSON lines on stdin and stdout",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := boot.LoadConfig(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	flags := cmd.Flags()
	flags.String("config", "", "Config file (default $PORT_CONFIG)")
	flags.String("initial-url", "", "Initial history URL")
	flags.String("storage", "", "SQLite database path for the storage family")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("initial_url", flags.Lookup("initial-url"))
	_ = v.BindPFlag("storage.path", flags.Lookup("storage"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	return cmd
}

// serve runs the host until stdin is exhausted and every request has been
// answered, or until ctx is cancelled.
func serve(ctx context.Context, cfg boot.Config, in io.Reader, out, logs io.Writer) error {
	inst, err := boot.Start(ctx, cfg, nil, logs)
	if err != nil {
		return err
	}
	defer inst.Close()

	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan []byte)
	g.Go(func() error {
		defer close(lines)
		return readLines(ctx, in, lines)
	})
	g.Go(func() error {
		err := loop(ctx, inst, lines, out)
		// Unblock a reader parked on a terminal.
		if c, ok := in.(io.Closer); ok && ctx.Err() != nil {
			c.Close()
		}
		return err
	})
	return g.Wait()
}

func readLines(ctx context.Context, in io.Reader, lines chan<- []byte) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := append([]byte(nil), sc.Bytes()...)
		if len(line) == 0 {
			continue
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			return nil
		}
	}
	return sc.Err()
}

// loop is the logical thread: the only goroutine that touches the host.
func loop(ctx context.Context, inst *boot.Instance, lines <-chan []byte, out io.Writer) error {
	h := inst.Host
	w := bufio.NewWriter(out)
	defer w.Flush()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		if err := drain(h, w); err != nil {
			return err
		}
		if lines == nil && h.Runtime().InFlight() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			cmd, err := decodeCommand(line)
			if err != nil {
				inst.Logger.Warn("rejected command", "error", err)
				continue
			}
			if err := h.Dispatch(cmd); err != nil {
				inst.Logger.Warn("rejected command", "error", err)
			}
		case <-tick.C:
		}
	}
}

// drain writes every event that is ready.
func drain(h *port.Host, w *bufio.Writer) error {
	wrote := false
	for {
		ev, err := h.Next()
		if err != nil {
			break
		}
		b, err := encodeEvent(ev)
		if err != nil {
			return err
		}
		w.Write(b)
		w.WriteByte('\n')
		wrote = true
	}
	if wrote {
		return w.Flush()
	}
	return nil
}
