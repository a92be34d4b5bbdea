package main

import (
	"fmt"
	"os"

	"github.com/KarpelesLab/newfs"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export or import a whole-device image",
	}
	cmd.AddCommand(snapshotExportCmd(), snapshotImportCmd())
	return cmd
}

func parseCodec(name string) (newfs.Codec, error) {
	switch name {
	case "gzip", "":
		return newfs.CodecGzip, nil
	case "xz":
		return newfs.CodecXZ, nil
	case "zstd":
		return newfs.CodecZSTD, nil
	default:
		return 0, fmt.Errorf("unknown codec %q", name)
	}
}

func snapshotExportCmd() *cobra.Command {
	var codecName string
	cmd := &cobra.Command{
		Use:   "export <image> <out-file>",
		Short: "Sync and export a compressed whole-device image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := parseCodec(codecName)
			if err != nil {
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
			out, err := os.Create(args[1])
			if err != nil {
				fs.Umount()
				return err
			}
			defer out.Close()
			if err := newfs.Export(fs, out, codec); err != nil {
				fs.Umount()
				return err
			}
			return fs.Umount()
		},
	}
	cmd.Flags().StringVar(&codecName, "codec", "gzip", "compression codec (gzip, xz, zstd)")
	return cmd
}

func snapshotImportCmd() *cobra.Command {
	var codecName string
	var ioUnit int
	cmd := &cobra.Command{
		Use:   "import <snapshot-file> <image>",
		Short: "Decompress a snapshot onto a (re)created device image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := parseCodec(codecName)
			if err != nil {
				return err
			}
			if err := newfs.CreateImage(args[1], ioUnit); err != nil {
				return err
			}
			drv, err := newfs.Open(args[1])
			if err != nil {
				return err
			}
			defer drv.Close()

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			return newfs.Import(in, codec, drv)
		},
	}
	cmd.Flags().StringVar(&codecName, "codec", "gzip", "compression codec (gzip, xz, zstd)")
	cmd.Flags().IntVar(&ioUnit, "io-unit", 512, "I/O unit size in bytes used to size the image file")
	return cmd
}
