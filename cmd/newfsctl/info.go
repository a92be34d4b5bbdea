package main

import (
	"fmt"

	"github.com/KarpelesLab/newfs"
	"github.com/spf13/cobra"
)

func withMountedRO(path string, fn func(fs *newfs.FS) error) error {
	drv, err := newfs.Open(path)
	if err != nil {
		return err
	}
	fs, err := newfs.Mount(drv)
	if err != nil {
		return err
	}
	if err := fn(fs); err != nil {
		fs.Umount()
		return err
	}
	return fs.Umount()
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Print the block size, mount state and root entry count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMountedRO(args[0], func(fs *newfs.FS) error {
				fmt.Printf("block size:  %d\n", fs.BlockSize())
				fmt.Printf("mounted:     %v\n", fs.Mounted())
				root := fs.Root()
				entries, err := fs.ReadDir(root)
				if err != nil {
					return err
				}
				fmt.Printf("root entries: %d\n", len(entries))
				return nil
			})
		},
	}
}
