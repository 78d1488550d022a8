package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lanealu/alu"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <op> <width> <a> <b>",
		Short: "Evaluate one ALU operation and print the result word",
		Example: "  lanealu eval add 16 0x00FF 0x0001\n" +
			"  lanealu eval shr 32 FF_FF_FF_FF 4",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := alu.ParseOperation(args[0])
			if err != nil {
				return err
			}

			bits, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("lane width %q: %w", args[1], alu.ErrInvalidLaneWidth)
			}
			w, err := alu.ParseLaneWidth(bits)
			if err != nil {
				return err
			}

			a, err := alu.ParseWord(args[2])
			if err != nil {
				return fmt.Errorf("operand a: %w", err)
			}
			b, err := alu.ParseWord(args[3])
			if err != nil {
				return fmt.Errorf("operand b: %w", err)
			}

			result, err := alu.Execute(op, a, b, w)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
