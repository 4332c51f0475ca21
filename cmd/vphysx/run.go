package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"viper-physics/internal/debug"
	"viper-physics/internal/download"
	"viper-physics/internal/engineconfig"
	"viper-physics/internal/env"
	"viper-physics/internal/logger"
	"viper-physics/internal/mapgen"
	"viper-physics/internal/physics"
	"viper-physics/internal/scene"
	"viper-physics/internal/sim"
)

type runOptions struct {
	configPath string
	scenePath  string
	frames     int
	frameDelta float64
	every      int
	profile    string
	terrain    int
	seed       int64
}

// report is what run prints: the frame count and the final state of every body.
type report struct {
	Frames   int             `yaml:"frames"`
	Contacts int             `yaml:"contacts"`
	Bodies   []physics.State `yaml:"bodies"`
}

func run(opts runOptions, out io.Writer) error {
	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile %q (want cpu or mem)", opts.profile)
	}

	if err := env.Load(env.DotEnvPath); err != nil {
		return err
	}
	prefs, err := engineconfig.Load(opts.configPath)
	if err != nil {
		return err
	}
	if prefs, err = env.Override(prefs); err != nil {
		return err
	}
	log, err := logger.New(logger.Options{Level: prefs.LogLevel, Path: prefs.LogPath})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	def := scene.Default()
	if opts.scenePath != "" {
		path, err := resolveScene(opts.scenePath, download.SceneDir)
		if err != nil {
			return err
		}
		if def, err = scene.Load(path); err != nil {
			return err
		}
	}
	if opts.terrain > 0 {
		terrain := mapgen.DefaultHeightMapOptions()
		terrain.Width, terrain.Depth, terrain.Seed = opts.terrain, opts.terrain, opts.seed
		def.Bodies = append(mapgen.Terrain(terrain), def.Bodies...)
	}
	if def.Gravity == nil {
		g := prefs.Gravity
		def.Gravity = &g
	}
	world, err := scene.Build(def, log)
	if err != nil {
		return err
	}
	runner, err := sim.NewRunner(world, prefs.FixedDelta, prefs.MaxFixedSteps, log)
	if err != nil {
		return err
	}
	log.Info("simulation started",
		zap.String("scene", sceneName(opts.scenePath)),
		zap.Int("bodies", len(world.Bodies)),
		zap.Int("frames", opts.frames),
		zap.Float32("fixed_delta", prefs.FixedDelta),
		zap.Float32s("gravity", world.Gravity[:]),
	)

	contacts := 0
	stats := debug.New()
	err = runner.Run(opts.frames, float32(opts.frameDelta), func(res sim.FrameResult) error {
		contacts += len(res.Contacts)
		stats.Tick(res.FixedSteps)
		if opts.every <= 0 || res.Frame%opts.every != 0 {
			return nil
		}
		log.Debug("runtime stats", stats.Fields()...)
		for _, b := range world.Bodies {
			log.Info("body state",
				zap.Int("frame", res.Frame),
				zap.String("name", b.Name),
				zap.Float32s("position", vec(b.Position)),
				zap.Float32s("velocity", vec(b.LinearVelocity)),
			)
		}
		return nil
	})
	if err != nil {
		return err
	}

	states, err := world.Snapshot()
	if err != nil {
		return err
	}
	log.Info("simulation finished", append(stats.Fields(), zap.Int("contacts", contacts))...)
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report{Frames: runner.Frames(), Contacts: contacts, Bodies: states}); err != nil {
		return err
	}
	return enc.Close()
}

func check(scenePath string, out io.Writer) error {
	if scenePath == "" {
		return fmt.Errorf("check: -scene is required")
	}
	path, err := resolveScene(scenePath, download.SceneDir)
	if err != nil {
		return err
	}
	def, err := scene.Load(path)
	if err != nil {
		return err
	}
	world, err := scene.Build(def, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d bodies ok\n", scenePath, len(world.Bodies))
	return nil
}

// resolveScene returns a local path for scenePath, fetching it into destDir first when it is a URL.
func resolveScene(scenePath, destDir string) (string, error) {
	if !download.IsURL(scenePath) {
		return scenePath, nil
	}
	return download.Scene(context.Background(), scenePath, destDir)
}

func writeDefaults(configPath, scenePath string) error {
	if err := engineconfig.Save(configPath, engineconfig.Default()); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(scenePath), 0755); err != nil {
		return err
	}
	f, err := os.Create(scenePath)
	if err != nil {
		return err
	}
	if err := scene.Encode(f, scene.Default()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sceneName(path string) string {
	if path == "" {
		return "demo"
	}
	return path
}

func vec(v mgl32.Vec3) []float32 {
	return v[:]
}
