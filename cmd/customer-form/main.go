package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/internal/config"
	"github.com/goliatone/go-customerform/internal/logger"
	"github.com/goliatone/go-customerform/pkg/controller"
	"github.com/goliatone/go-customerform/pkg/customer"
	"github.com/goliatone/go-customerform/pkg/form"
	"github.com/goliatone/go-customerform/pkg/orchestrator"
	"github.com/goliatone/go-customerform/pkg/render"
	"github.com/goliatone/go-customerform/pkg/renderers/html"
	"github.com/goliatone/go-customerform/pkg/renderers/text"
	"github.com/goliatone/go-customerform/pkg/renderers/tui"
)

const (
	actionInteractive = "interactive"
	actionInfo        = "info"
)

func main() {
	configFile := flag.String("config", "", "YAML config file")
	action := flag.String("action", actionInteractive, "interactive, info or one of: "+actionList())
	id := flag.String("id", "", "customer id")
	name := flag.String("name", "", "customer name")
	address := flag.String("address", "", "customer address")
	email := flag.String("email", "", "customer email")
	phone := flag.String("phone", "", "customer phone number")
	since := flag.String("since", "", "member since (YYYY-MM-DD)")
	status := flag.String("status", "", "customer status")
	rendererName := flag.String("renderer", "", "renderer to use (text or html)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	cfg, err := config.Load(config.WithFile(*configFile))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		Development:       cfg.Logger.Development || cfg.IsDevelopment(),
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := *rendererName
	if renderer == "" {
		renderer = cfg.UI.Renderer
	}

	assembly, err := assemble(ctx, cfg, renderer, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to assemble customer form", zap.Error(err))
	}

	values := map[string]string{
		customer.FieldID:          *id,
		customer.FieldName:        *name,
		customer.FieldAddress:     *address,
		customer.FieldEmail:       *email,
		customer.FieldPhoneNumber: *phone,
		customer.FieldMemberSince: *since,
		customer.FieldStatus:      *status,
	}

	switch strings.ToLower(strings.TrimSpace(*action)) {
	case actionInteractive:
		err = runInteractive(ctx, assembly, values, appLogger)
	case actionInfo:
		err = runInfo(ctx, assembly)
	default:
		err = runOnce(ctx, assembly, *action, values, *output)
	}
	if err != nil {
		appLogger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func assemble(ctx context.Context, cfg config.Config, renderer string, appLogger *zap.Logger) (*orchestrator.Assembly, error) {
	encoding, err := form.ParseQueryEncoding(cfg.Search.Encoding)
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithLogger(appLogger),
		orchestrator.WithQueryEncoding(encoding),
		orchestrator.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	}
	if cfg.UI.Overlay != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(cfg.UI.Overlay)))
	}
	if cfg.UI.Templates != "" {
		htmlRenderer, err := html.New(html.WithTemplatesDir(cfg.UI.Templates))
		if err != nil {
			return nil, err
		}
		registry, err := render.NewRegistry(text.New(), htmlRenderer)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithRegistry(registry))
	}

	return orchestrator.New(options...).Assemble(ctx, orchestrator.Request{
		BaseURL:  cfg.API.BaseURL,
		Renderer: renderer,
	})
}

func seed(ctrl *controller.Controller, values map[string]string) error {
	for field, value := range values {
		if value == "" {
			continue
		}
		if err := ctrl.SetField(field, value); err != nil {
			return err
		}
	}
	return nil
}

func runOnce(ctx context.Context, assembly *orchestrator.Assembly, rawAction string, values map[string]string, output string) error {
	action, err := controller.ParseAction(rawAction)
	if err != nil {
		return err
	}
	if err := seed(assembly.Controller, values); err != nil {
		return err
	}

	triggerErr := assembly.Controller.Trigger(ctx, action)

	out, err := assembly.Render(ctx)
	if err != nil {
		return err
	}
	if output != "" {
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("View written to %s\n", output)
	} else {
		os.Stdout.Write(out)
	}
	return triggerErr
}

func runInfo(ctx context.Context, assembly *orchestrator.Assembly) error {
	info, err := assembly.Client.Info(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n%s\n", info.Name, info.Version, info.Paths)
	return nil
}

func runInteractive(ctx context.Context, assembly *orchestrator.Assembly, values map[string]string, appLogger *zap.Logger) error {
	if err := seed(assembly.Controller, values); err != nil {
		return err
	}
	session, err := tui.New(assembly.Controller, assembly.Model,
		tui.WithLogger(appLogger),
		tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
	)
	if err != nil {
		return err
	}
	if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func actionList() string {
	names := make([]string, 0, len(controller.Actions()))
	for _, action := range controller.Actions() {
		names = append(names, string(action))
	}
	return strings.Join(names, ", ")
}

