package main

import (
	"fmt"

	"github.com/KarpelesLab/newfs"
	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <image> [path]",
		Short: "List a directory's entries",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := "/"
			if len(args) > 1 {
				p = args[1]
			}
			return withMountedRO(args[0], func(fs *newfs.FS) error {
				dentry, found, _ := fs.Lookup(p)
				if !found && p != "/" {
					return newfs.ErrNotFound
				}
				entries, err := fs.ReadDir(dentry)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Printf("%-6s %s\n", e.Type, e.Name)
				}
				return nil
			})
		},
	}
}

func catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <image> <path>",
		Short: "Print a regular file's contents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMountedRO(args[0], func(fs *newfs.FS) error {
				dentry, found, _ := fs.Lookup(args[1])
				if !found {
					return newfs.ErrNotFound
				}
				data, err := fs.ReadFile(dentry)
				if err != nil {
					return err
				}
				_, err = fmt.Print(string(data))
				return err
			})
		},
	}
}

func writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <image> <path> <data>",
		Short: "Overwrite a regular file's contents",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMountedRW(args[0], func(fs *newfs.FS) error {
				dentry, found, _ := fs.Lookup(args[1])
				if !found {
					return newfs.ErrNotFound
				}
				return fs.WriteFile(dentry, []byte(args[2]))
			})
		},
	}
}
