package main

import (
	"fmt"

	"github.com/KarpelesLab/newfs"
	"github.com/spf13/cobra"
)

func formatCmd() *cobra.Command {
	var ioUnit int
	cmd := &cobra.Command{
		Use:   "format <image>",
		Short: "Create and format a new device image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newfs.CreateImage(args[0], ioUnit); err != nil {
				return err
			}
			drv, err := newfs.Open(args[0])
			if err != nil {
				return err
			}
			fs, err := newfs.Mount(drv)
			if err != nil {
				return err
			}
			blockSize := fs.BlockSize()
			if err := fs.Umount(); err != nil {
				return err
			}
			fmt.Printf("formatted %s (block size %d)\n", args[0], blockSize)
			return nil
		},
	}
	cmd.Flags().IntVar(&ioUnit, "io-unit", 512, "I/O unit size in bytes used to size the image file")
	return cmd
}
