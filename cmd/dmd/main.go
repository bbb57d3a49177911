// Command dmd downloads a blocks.json palette and checks which built-in
// ores resolve against it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/oregen/internal/logger"
	"github.com/OCharnyshevich/oregen/internal/server/config"
	"github.com/OCharnyshevich/oregen/pkg/gamedata"
	"github.com/OCharnyshevich/oregen/pkg/ore"
)

func main() {
	var (
		base     = flag.String("base", "https://raw.githubusercontent.com/PrismarineJS/minecraft-data/master", "base url")
		platform = flag.String("platform", "pc", "platform of the palette")
		ver      = flag.String("version", "1.21.8", "version of the palette")
		src      = flag.String("url", "", "full palette url, overrides base/platform/version")
		out      = flag.String("o", "./palettes", "output dir path")
	)
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", Format: "console"})

	if *out == "" {
		panic("output dir path required")
	}

	url := *src
	if url == "" {
		if *platform == "" || *ver == "" {
			panic("platform and version required")
		}
		url = fmt.Sprintf("%s/data/%s/%s/blocks.json", *base, *platform, *ver)
	}

	path := filepath.Join(*out, fmt.Sprintf("%s-%s.json", *platform, *ver))
	if *src != "" {
		path = filepath.Join(*out, filepath.Base(*src))
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		panic(err)
	}

	log.Info("downloading palette", "url", url, "path", path)
	if err := get.GetFile(path, url); err != nil {
		log.Error("download palette", "error", err)
		os.Exit(1)
	}

	p, err := gamedata.LoadPalette(path)
	if err != nil {
		log.Error("invalid palette", "error", err)
		os.Exit(1)
	}
	log.Info("palette loaded", "blocks", len(p.All()))

	g := config.DefaultOreConfig().Generation()
	reg, err := ore.Build(ore.CoalSpecs(g.MinY, g.MaxY), p, log)
	if errors.Is(err, ore.ErrNoOres) {
		log.Warn("no built-in ore resolves against this palette; configure custom ores to use it")
		return
	}
	if err != nil {
		log.Error("build ore registry", "error", err)
		os.Exit(1)
	}
	log.Info("palette ready", "ores", reg.Len())
}
