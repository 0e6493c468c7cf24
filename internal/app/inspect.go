package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools/internal/imaging"
)

func (a *application) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Print format, size and source encoding of images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := newCache()
			type fileInfo struct {
				Path string `json:"path"`
				*imaging.Info
			}

			infos := make([]fileInfo, 0, len(args))
			for _, path := range args {
				info, err := imaging.LoadInfo(cmd.Context(), cache, path)
				if err != nil {
					return err
				}
				infos = append(infos, fileInfo{Path: path, Info: info})
			}
			return printJSON(cmd.OutOrStdout(), infos)
		},
	}
}

// PixelReport is the output of the pixel command.
type PixelReport struct {
	X     int                 `json:"x"`
	Y     int                 `json:"y"`
	Index int                 `json:"index"`
	Color imaging.ColorResult `json:"color"`
}

func (a *application) pixelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pixel FILE X Y",
		Short: "Print the color at a coordinate",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			img, err := openImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c, err := imaging.SampleColor(img, x, y)
			if err != nil {
				return err
			}
			idx, _ := img.PixelIndex(x, y)
			return printJSON(cmd.OutOrStdout(), PixelReport{X: x, Y: y, Index: idx, Color: *c})
		},
	}
}
