package main

import (
	"fmt"
	"log"
	"os"

	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/filesystem"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Usage:     "Print the blocks and content of a UFS file",
		ArgsUsage: "IMAGE INODE_NUMBER",
		Action:    catInode,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("ucat: %s", err)
	}
}

func catInode(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: ucat IMAGE INODE_NUMBER", 1)
	}

	imagePath := c.Args().Get(0)
	var inodeNumber uint32
	if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &inodeNumber); err != nil {
		return cli.Exit(fmt.Sprintf("invalid inode number: %s", c.Args().Get(1)), 1)
	}

	dev, err := blockdev.OpenFileDevice(imagePath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error reading file: %s", err), 1)
	}
	defer dev.Close()

	fs := filesystem.New(dev)

	rec, err := fs.Stat(inodeNumber)
	if err != nil || rec.IsDirectory() {
		return cli.Exit("Error reading file", 1)
	}

	fmt.Println("File blocks")
	for i := uint32(0); i < rec.UsedBlocks(); i++ {
		fmt.Println(rec.Direct[i])
	}
	fmt.Println()

	content, err := fs.Read(inodeNumber, rec.Size)
	if err != nil || uint32(len(content)) != rec.Size {
		return cli.Exit("Error reading file", 1)
	}

	fmt.Println("File data")
	os.Stdout.Write(content)

	return nil
}
