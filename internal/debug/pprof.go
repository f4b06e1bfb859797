// Package debug serves runtime profiles on a separate listener.
package debug

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/gin-contrib/pprof"
    "github.com/gin-gonic/gin"
    "github.com/zeromicro/go-zero/core/logx"
)

// Handler returns a router exposing /debug/pprof.
func Handler() http.Handler {
    gin.SetMode(gin.ReleaseMode)
    router := gin.New()
    router.Use(gin.Recovery())
    pprof.Register(router)
    return router
}

// Serve runs the profiling listener on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
    srv := &http.Server{Addr: addr, Handler: Handler()}
    go func() {
        <-ctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = srv.Shutdown(shutdownCtx)
    }()
    logx.Infof("pprof listening on %s", addr)
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
        return err
    }
    return nil
}
