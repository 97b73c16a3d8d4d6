package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/orevein/cmd/veingen/components"
	"github.com/VoidMesh/orevein/internal/config"
	"github.com/VoidMesh/orevein/internal/logging"
	"github.com/VoidMesh/orevein/services/vein"
)

func main() {
	profilePath := flag.String("profile", os.Getenv("VEIN_PROFILE"), "Path to a YAML generator profile")
	seed := flag.String("seed", "", "Seed override")
	originX := flag.Int("x", 0, "Tile origin X")
	originZ := flag.Int("z", 0, "Tile origin Z")
	width := flag.Int("width", 16, "Tile width (layer mode)")
	height := flag.Int("height", 16, "Tile height (layer mode)")
	flagsRaw := flag.String("flags", strconv.Itoa(int(vein.DefaultLayerFlags)), "Sampling flags (decimal, 0x or 0b)")
	mode := flag.String("mode", "layer", "Generation mode (layer, diffuse)")
	small := flag.Int("small", 8, "Coarse grid size (diffuse mode)")
	large := flag.Int("large", 32, "Output grid size (diffuse mode)")
	diffusion := flag.Int("diffusion", 4, "Diffusion radius (diffuse mode)")
	blur := flag.Int("blur", 1, "Blur radius (diffuse mode)")
	independent := flag.Bool("independent", false, "Hash each diffusion axis separately (diffuse mode)")
	channel := flag.String("channel", "all", "Channel to print (A, R, G, B, all)")
	view := flag.String("view", "table", "Output view (table, heatmap)")
	dumpProfile := flag.Bool("dump-profile", false, "Print the effective profile as YAML and exit")
	logLevel := flag.String("log", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	logging.Logger = logging.New(os.Stderr, logging.ParseLevel(*logLevel))
	logger := logging.WithComponent("veingen")

	genCfg := config.GeneratorConfig{ProfilePath: *profilePath}
	if *seed != "" {
		s, err := strconv.ParseInt(*seed, 10, 64)
		if err != nil {
			logger.Fatal("Invalid seed", "seed", *seed, "error", err)
		}
		genCfg.SeedOverride = &s
	}

	veinCfg, err := genCfg.VeinConfig()
	if err != nil {
		logger.Fatal("Failed to load generator profile", "error", err, "path", *profilePath)
	}

	if *dumpProfile {
		raw, err := config.ProfileFromConfig(veinCfg).Marshal()
		if err != nil {
			logger.Fatal("Failed to encode profile", "error", err)
		}
		fmt.Print(string(raw))
		return
	}

	flags, err := parseFlags(*flagsRaw)
	if err != nil {
		logger.Fatal("Invalid flags", "flags", *flagsRaw, "error", err)
	}
	channels, err := parseChannels(*channel)
	if err != nil {
		logger.Fatal("Invalid channel", "error", err)
	}

	gen, err := vein.NewGenerator(veinCfg, vein.NewLoggerAdapter(logger))
	if err != nil {
		logger.Fatal("Failed to create generator", "error", err)
	}

	var cells []vein.ARGB
	gridWidth := *width
	switch *mode {
	case "layer":
		cells, err = gen.Generate(*originX, *originZ, *width, *height, flags, nil)
	case "diffuse":
		opts := vein.DefaultDiffuseOptions(*small, *large, *diffusion, *blur)
		opts.Flags = flags
		opts.IndependentAxes = *independent
		cells, err = gen.GenerateDiffuse(*originX, *originZ, opts)
		gridWidth = *large
	default:
		logger.Fatal("Unknown mode", "mode", *mode)
	}
	if err != nil {
		logger.Fatal("Generation failed", "error", err)
	}

	fmt.Println(render(cells, gridWidth, channels, flags, *view, veinCfg.Seed, *originX, *originZ))
}

func render(cells []vein.ARGB, width int, channels []vein.Channel, flags vein.Flags, view string, seed int64, originX, originZ int) string {
	// a culled cell packs to zero before inversion
	var culled vein.ARGB
	if flags.Inverted() {
		culled = culled.Inverse()
	}

	title := components.TitleStyle.Render(fmt.Sprintf("Ore veins seed=%d origin=(%d, %d) flags=%#b", seed, originX, originZ, uint32(flags)))
	sections := []string{title}
	for _, ch := range channels {
		switch view {
		case "heatmap":
			sections = append(sections, components.SubtitleStyle.Render("Channel "+ch.String()), components.Heatmap(cells, width, ch))
		default:
			sections = append(sections, components.ChannelTable(cells, width, ch, culled))
		}
	}
	sections = append(sections, components.Summary(cells, culled))
	if _, gated := flags.Gating(); gated {
		sections = append(sections, components.HelpStyle.Render("dimmed cells were culled by the gating channel"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func parseFlags(raw string) (vein.Flags, error) {
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, err
	}
	flags := vein.Flags(v)
	return flags, flags.Validate()
}

func parseChannels(raw string) ([]vein.Channel, error) {
	switch strings.ToUpper(raw) {
	case "ALL", "":
		return []vein.Channel{vein.ChannelA, vein.ChannelR, vein.ChannelG, vein.ChannelB}, nil
	case "A":
		return []vein.Channel{vein.ChannelA}, nil
	case "R":
		return []vein.Channel{vein.ChannelR}, nil
	case "G":
		return []vein.Channel{vein.ChannelG}, nil
	case "B":
		return []vein.Channel{vein.ChannelB}, nil
	default:
		return nil, fmt.Errorf("unknown channel %q", raw)
	}
}
