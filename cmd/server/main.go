package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"modelmux/internal/ai"
	"modelmux/internal/ai/deepinfra"
	"modelmux/internal/ai/gpt4free"
	"modelmux/internal/config"
	"modelmux/internal/dispatch"
	"modelmux/internal/imagegen"
	"modelmux/internal/search"
	"modelmux/internal/ws"
	staticserver "modelmux/static"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`modelmux - AI completion dispatcher

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  OWNER_ID            Identity allowed to switch models (required for admin commands)
  DEFAULT_OPTION      Starting model option: "1" (DeepInfra) or "2" (g4f) (default: 1)
  DEEPINFRA_URL       Custom DeepInfra completion URL (optional)
  DEEPINFRA_API_KEY   DeepInfra API key (optional)
  GPT4FREE_BASE_URL   gpt4free interference server (default: http://localhost:1337)
  IMAGE_BASE_URL      Image generation host (default: https://api.codeltix.com)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000

Visit http://localhost:8080 after starting the server.
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("modelmux %s\n", version)
		return
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Config
	cfg := config.FromEnv()

	// Determine port (flag wins over environment)
	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	if cfg.OwnerID == "" {
		zerologlog.Warn().Msg("OWNER_ID not set, admin commands are disabled")
	}

	// Backends + dispatcher
	primary := deepinfra.New(cfg.DeepInfraURL, cfg.DeepInfraAPIKey)
	secondary := gpt4free.New(cfg.GPT4FreeBaseURL)
	d := dispatch.New(cfg.OwnerID, primary, secondary, search.NewDuckDuckGo(), dispatch.NewState(cfg.DefaultOption))
	images := imagegen.New(cfg.ImageBaseURL)

	// Chat gateway
	sock := ws.New(d, images)
	io := sock.Mount(r)
	defer io.Close()

	// HTTP API mirroring the socket events
	type chatReq struct {
		UserID   string       `json:"userId"`
		Messages []ai.Message `json:"messages"`
	}
	r.POST("/api/chat", func(c *gin.Context) {
		var req chatReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"response": d.Respond(c.Request.Context(), req.Messages, req.UserID)})
	})

	type optionReq struct {
		UserID  string `json:"userId"`
		Command string `json:"command"`
	}
	r.POST("/api/option", func(c *gin.Context) {
		var req optionReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": d.HandleOption(req.UserID, req.Command)})
	})

	r.GET("/api/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": d.Status(c.Query("userId"))})
	})

	r.GET("/api/image", func(c *gin.Context) {
		prompt := c.Query("prompt")
		if prompt == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_prompt"})
			return
		}
		data, err := images.Generate(c.Request.Context(), url.QueryEscape(prompt))
		if err != nil {
			zerologlog.Error().Err(err).Msg("image generation failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "image_unavailable"})
			return
		}
		c.Data(http.StatusOK, "image/png", data)
	})

	// Serve the embedded console for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
