package cmd

import (
	"fmt"
	"os"

	"github.com/reshxs/pocket-storage-backend/pkg/qrcode"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var QRCodeCmd = &cobra.Command{
	Use:   "qrcode <storage-unit-id>",
	Short: "Render the QR label of a storage unit to a PNG file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid storage unit id: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = id.String() + ".png"
		}
		size, _ := cmd.Flags().GetInt("size")
		if size <= 0 {
			size = qrcode.DefaultImageSize
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		code, err := a.container.StorageUnitService.GetQRCode(cmd.Context(), id, size)
		if err != nil {
			return fmt.Errorf("render qrcode: %w", err)
		}

		if err := os.WriteFile(out, code.PNG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		a.logger.Info("QR code written", zap.String("file", out), zap.String("content", code.Content))
		return nil
	},
}
