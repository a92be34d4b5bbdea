package main

import (
	"github.com/KarpelesLab/newfs"
	"github.com/spf13/cobra"
)

func mkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <image> <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMountedRW(args[0], func(fs *newfs.FS) error {
				_, err := fs.Mkdir(args[1])
				return err
			})
		},
	}
}

func touchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <image> <path>",
		Short: "Create an empty regular file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMountedRW(args[0], func(fs *newfs.FS) error {
				_, err := fs.Create(args[1])
				return err
			})
		},
	}
}

func withMountedRW(path string, fn func(fs *newfs.FS) error) error {
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
