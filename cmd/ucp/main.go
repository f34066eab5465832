package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/blockwise/ufs/blockdev"
	"github.com/blockwise/ufs/filesystem"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Usage:     "Copy a host file into a UFS image at an existing inode",
		ArgsUsage: "IMAGE SRC_FILE DST_INODE",
		Action:    copyIntoImage,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("ucp: %s", err)
	}
}

func copyIntoImage(c *cli.Context) error {
	if c.Args().Len() != 3 {
		return cli.Exit("usage: ucp IMAGE SRC_FILE DST_INODE", 1)
	}

	imagePath := c.Args().Get(0)
	srcPath := c.Args().Get(1)

	var dstInode uint32
	if _, err := fmt.Sscanf(c.Args().Get(2), "%d", &dstInode); err != nil {
		return cli.Exit(fmt.Sprintf("invalid inode number: %s", c.Args().Get(2)), 1)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open source file: %s", srcPath), 1)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return cli.Exit(fmt.Sprintf("read error for source file: %s", srcPath), 1)
	}

	dev, err := blockdev.OpenFileDevice(imagePath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open image: %s", err), 1)
	}
	defer dev.Close()

	fs := filesystem.New(dev)

	if err := dev.Begin(); err != nil {
		return cli.Exit(fmt.Sprintf("failed to start transaction: %s", err), 1)
	}

	n, err := fs.Write(dstInode, content)
	if err != nil {
		dev.Rollback()
		return cli.Exit(fmt.Sprintf("write error for inode %d: %s", dstInode, err), 1)
	}

	if err := dev.Commit(); err != nil {
		return cli.Exit(fmt.Sprintf("failed to commit transaction: %s", err), 1)
	}

	fmt.Printf("Copied %d bytes from %s to inode %d\n", n, srcPath, dstInode)
	return nil
}
