package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/zeromicro/go-zero/core/logx"
    "golang.org/x/sync/errgroup"

    "github.com/jaminalder/codex-reversi/internal/app"
    "github.com/jaminalder/codex-reversi/internal/config"
    "github.com/jaminalder/codex-reversi/internal/debug"
    "github.com/jaminalder/codex-reversi/internal/web"
)

var (
    configFile = flag.String("f", "etc/reversi.yaml", "the config file")
    listenAddr = flag.String("h", "", "listen address, overrides ListenOn")
)

func main() {
    flag.Parse()
    if err := run(); err != nil {
        os.Exit(1)
    }
}

func run() error {
    c, err := config.Load(*configFile)
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        return err
    }
    if *listenAddr != "" {
        c.ListenOn = *listenAddr
    }
    logx.MustSetup(c.Log)
    defer logx.Close()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    g, ctx := errgroup.WithContext(ctx)
    svc := app.NewService(app.WithSubscriberBuffer(c.SubscriberBuffer))
    srv := &http.Server{
        Addr:    c.ListenOn,
        Handler: web.NewServer(svc, web.Options{Marker: c.MarkerRune(), Heartbeat: c.Heartbeat}),
        // SSE streams end with the process context
        BaseContext: func(net.Listener) context.Context { return ctx },
    }
    g.Go(func() error {
        logx.Infof("Starting server at %s...", c.ListenOn)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            return err
        }
        return nil
    })
    g.Go(func() error {
        <-ctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        return srv.Shutdown(shutdownCtx)
    })
    if c.Pprof.Enabled {
        g.Go(func() error { return debug.Serve(ctx, c.PprofAddr()) })
    }
    if err := g.Wait(); err != nil {
        logx.Errorf("server stopped: %v", err)
        return err
    }
    return nil
}
