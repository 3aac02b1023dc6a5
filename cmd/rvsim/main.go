// Command rvsim is the composition root: it loads a flat ROM image,
// assembles an SoC (spec.md §6's default memory map), and runs the CPU
// to EBREAK or a tick budget. Flag parsing and program startup are
// external-collaborator concerns (spec.md §6: "Exit codes and CLI flags
// are external-collaborator concerns, not part of this core") - this is
// a thin host wrapper around the soc package, not the interactive
// Terminal UI spec.md's Non-goals exclude.
package main

import (
	"fmt"
	"os"

	"github.com/rvsim/core/soc"
	"github.com/spf13/cobra"
)

func main() {
	var maxTicks int
	var romSize uint32
	var ramSize uint32

	rootCmd := &cobra.Command{
		Use:   "rvsim <rom-image>",
		Short: "RV32I cycle-accurate simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("rvsim: reading ROM image: %w", err)
			}

			cfg := soc.DefaultConfig(image)
			if romSize != 0 {
				cfg.ROMWords = romSize / 4
			}
			if ramSize != 0 {
				cfg.RAMWords = ramSize / 4
			}

			machine, err := soc.New(cfg)
			if err != nil {
				return fmt.Errorf("rvsim: building SoC: %w", err)
			}

			ticks, halted := machine.Run(maxTicks)
			fmt.Fprintf(cmd.OutOrStdout(), "ran %d ticks, halted=%v, instret=%d\n",
				ticks, halted, machine.Counters.Instret())
			for i, v := range machine.CPU.Registers() {
				if v != 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "x%-2d = %08x\n", i, v)
				}
			}
			return nil
		},
	}

	rootCmd.Flags().IntVar(&maxTicks, "max-ticks", 1_000_000, "wall-clock tick budget to detect non-termination")
	rootCmd.Flags().Uint32Var(&romSize, "rom-size", 0, "ROM size in bytes (0 = default)")
	rootCmd.Flags().Uint32Var(&ramSize, "ram-size", 0, "RAM size in bytes (0 = default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
