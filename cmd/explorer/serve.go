package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jengzang/route-simplex/internal/api"
	"github.com/jengzang/route-simplex/internal/database"
	"github.com/jengzang/route-simplex/internal/repository"
	"github.com/jengzang/route-simplex/internal/routing"
	"github.com/jengzang/route-simplex/internal/service"
)

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the explorer HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			// 初始化数据库
			if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
				return err
			}
			defer database.Close()

			// 初始化服务层
			backend := routing.NewClient(cfg.Backend.URL, cfg.RequestTimeout())
			explorer := service.NewExplorerService(backend, repository.NewDebugLogRepository(database.GetDB()), cfg)
			stopSweeper := explorer.StartSweeper(time.Minute)
			defer stopSweeper()

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:    cfg.Port,
				Handler: api.SetupRouter(cfg, explorer),
			}

			go func() {
				log.Printf("Server starting on port %s, routing backend %s", cfg.Port, cfg.Backend.URL)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			log.Println("Shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}

			// let in-flight backend requests land before the database closes
			explorer.Wait()
			log.Println("Server exited")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen address, overrides the config (e.g. :8080)")
	return cmd
}
