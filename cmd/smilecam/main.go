// Smilecam - webcam smile watcher companion for the deskbot
// Detects smiles and mirrors happy/neutral moods on the ESP32 face.
package main

import (
	"context"
	"flag"
	stdlog "log"
	"os/signal"
	"syscall"

	"github.com/emodesk/deskbot/internal/config"
	"github.com/emodesk/deskbot/internal/log"
	"github.com/emodesk/deskbot/pkg/display"
	"github.com/emodesk/deskbot/pkg/vision"
)

func main() {
	cfg := vision.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	webcam := flag.Int("webcam", cfg.WebcamID, "Webcam device ID")
	faceModel := flag.String("face-cascade", cfg.FaceCascadePath, "Path to the frontal-face Haar cascade")
	smileModel := flag.String("smile-cascade", cfg.SmileCascadePath, "Path to the smile Haar cascade")
	deviceIP := flag.String("esp32-ip", "", "ESP32 display IP (overrides ESP32_IP env var)")
	flag.Parse()

	log.InitDebug(*debug)

	cfg.WebcamID = *webcam
	cfg.FaceCascadePath = *faceModel
	cfg.SmileCascadePath = *smileModel

	if err := config.LoadDotenv(); err != nil {
		stdlog.Printf("warning: could not load .env: %v", err)
	}
	addr := config.DeviceAddr()
	if *deviceIP != "" {
		addr = *deviceIP + ":" + config.DevicePort()
	}

	detector, err := vision.NewDetector(cfg, log.L())
	if err != nil {
		stdlog.Fatalf("detector: %v", err)
	}

	sender := display.NewClient(addr, log.L())
	watcher := vision.NewWatcher(cfg, detector, sender, log.L())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("smilecam started", "device", addr, "webcam", cfg.WebcamID)
	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		stdlog.Fatalf("watcher: %v", err)
	}
}
