package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/blockwise/ufs/mkfs"
	"github.com/blockwise/ufs/presets"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Usage: "Manage UFS disk image files",
		Commands: []*cli.Command{
			{
				Name:      "format",
				Usage:     "Create a new UFS image using a named preset geometry",
				Action:    formatImage,
				ArgsUsage: "IMAGE_PATH PRESET_NAME",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func formatImage(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit(
			fmt.Sprintf("usage: format IMAGE_PATH PRESET_NAME (available: %s)",
				strings.Join(presets.Names(), ", ")), 1)
	}

	path := c.Args().Get(0)
	presetName := c.Args().Get(1)

	g, err := presets.Get(presetName)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := mkfs.FormatFile(path, uint32(g.NumInodes), uint32(g.NumData)); err != nil {
		return cli.Exit(fmt.Sprintf("failed to format %s: %s", path, err), 1)
	}

	fmt.Printf("Formatted %s with preset %q (%d inodes, %d data blocks)\n", path, presetName, g.NumInodes, g.NumData)
	return nil
}
