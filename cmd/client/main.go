package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/seafarer/client/api"
	"github.com/cbodonnell/seafarer/client/engine"
	"github.com/cbodonnell/seafarer/client/game"
	"github.com/cbodonnell/seafarer/client/session"
	"github.com/cbodonnell/seafarer/pkg/config"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/ocean"
	"github.com/cbodonnell/seafarer/pkg/tokens"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug mode")
	logLevel := flag.String("log-level", "info", "Log level")
	startLevel := flag.Int("level", 1, "Level to start new games at")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	cfg, err := config.LoadClient()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	tokenStore, err := tokens.New(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to open token store: %v", err))
	}
	defer tokenStore.Close()

	gateway := api.NewHTTPGateway(api.NewHTTPGatewayOptions{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
	})
	log.Info("Using save service at %s", cfg.APIURL)

	sound := engine.NewSound(audio.NewContext(engine.SampleRate))
	controller := session.NewController(session.NewControllerOptions{
		Factory: engine.NewFactory(sound),
		Gateway: gateway,
		Tokens:  tokenStore,
	})

	width, height := int(ocean.WorldWidth), int(ocean.WorldHeight)
	g := game.NewGame(game.NewGameOptions{
		Debug:      *debug,
		Controller: controller,
		Canvas:     engine.NewCanvas(width, height),
		Config: session.GameConfig{
			Width:      width,
			Height:     height,
			StartLevel: *startLevel,
		},
		RequestTimeout: cfg.RequestTimeout,
	})
	defer g.Close()

	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Seafarer")
	ebiten.SetTPS(ocean.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		log.Error("Failed to run game: %v", err)
	}
}
