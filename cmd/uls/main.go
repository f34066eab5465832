package main

import (
	"fmt"
	"log"
	"os"

	"github.com/blockwise/ufs"
	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/filesystem"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Usage:     "List the contents of a UFS directory, or show a single file's entry",
		ArgsUsage: "IMAGE PATH",
		Action:    listPath,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("uls: %s", err)
	}
}

func listPath(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: uls IMAGE PATH", 1)
	}

	imagePath := c.Args().Get(0)
	path := c.Args().Get(1)

	if len(path) == 0 || path[0] != '/' {
		return cli.Exit("Directory not found", 1)
	}

	dev, err := blockdev.OpenFileDevice(imagePath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open image: %s", err), 1)
	}
	defer dev.Close()

	fs := filesystem.New(dev)

	inodeNumber, parentInodeNumber, err := fs.Resolve(path)
	if err != nil {
		return cli.Exit("Directory not found", 1)
	}

	rec, err := fs.Stat(inodeNumber)
	if err != nil {
		return cli.Exit("Directory not found", 1)
	}

	if rec.Type == ufs.TypeRegular {
		entries, err := fs.ListDir(parentInodeNumber)
		if err != nil {
			return cli.Exit("Directory not found", 1)
		}
		for _, e := range entries {
			if e.Inode == inodeNumber {
				fmt.Printf("%d\t%s\n", e.Inode, e.Name)
				return nil
			}
		}
		return cli.Exit("Directory not found", 1)
	}

	entries, err := fs.ListDir(inodeNumber)
	if err != nil {
		return cli.Exit("Directory not found", 1)
	}
	for _, e := range entries {
		fmt.Printf("%d\t%s\n", e.Inode, e.Name)
	}
	return nil
}
