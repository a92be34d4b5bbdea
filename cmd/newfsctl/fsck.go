package main

import (
	"fmt"

	"github.com/KarpelesLab/newfs"
	"github.com/spf13/cobra"
)

func fsckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fsck <image>",
		Short: "Walk the tree checking that no entry claims the root inode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMountedRO(args[0], func(fs *newfs.FS) error {
				var problems int
				var walk func(dentry *newfs.Dentry, p string) error
				walk = func(dentry *newfs.Dentry, p string) error {
					entries, err := fs.ReadDir(dentry)
					if err != nil {
						return err
					}
					for _, e := range entries {
						if e.Ino == newfs.RootIno {
							problems++
							fmt.Printf("problem: %s%s claims root inode number\n", p, e.Name)
						}
						if e.Type.IsDir() {
							child := e
							if err := walk(&child, p+e.Name+"/"); err != nil {
								return err
							}
						}
					}
					return nil
				}
				if err := walk(fs.Root(), "/"); err != nil {
					return err
				}
				fmt.Printf("fsck: %d problem(s) found\n", problems)
				return nil
			})
		},
	}
}
