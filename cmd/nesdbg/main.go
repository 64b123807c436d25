// Command nesdbg is a small host driver around the nescore CPU: it loads a
// raw program into memory and either single-steps it, runs it for a fixed
// cycle budget, or drops into the interactive bubbletea debugger. None of
// this belongs to the core itself -- it is just a caller that knows when to
// call Step, RunCycles, and Reset.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nescore/cpu"
	"nescore/ppu"
)

func main() {
	var offsetStr string
	var programPath string

	rootCmd := &cobra.Command{
		Use:   "nesdbg",
		Short: "Host driver for the nescore 2A03 CPU core",
	}
	rootCmd.PersistentFlags().StringVar(&programPath, "program", "", "path to a raw binary program")
	rootCmd.PersistentFlags().StringVar(&offsetStr, "offset", "8000", "load address, hex (no 0x prefix)")
	rootCmd.MarkPersistentFlagRequired("program")

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "Execute a single instruction and print the resulting state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, offset, err := loadCpu(programPath, offsetStr)
			if err != nil {
				return err
			}
			c.ProgramCounter = offset
			cycles, err := c.Step()
			if err != nil {
				fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
			}
			printState(c, cycles)
			return nil
		},
	}

	var cycleBudget int32
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the program for a fixed cycle budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, offset, err := loadCpu(programPath, offsetStr)
			if err != nil {
				return err
			}
			c.ProgramCounter = offset
			remaining := cycleBudget
			c.RunCycles(&remaining)
			printState(c, uint32(cycleBudget-remaining))
			return nil
		},
	}
	runCmd.Flags().Int32Var(&cycleBudget, "cycles", 100, "number of cycles to run")

	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Launch the interactive single-step debugger",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, offset, err := loadCpu(programPath, offsetStr)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(programPath)
			if err != nil {
				return err
			}
			c.Debug([]byte(toHexProgram(raw)), offset)
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Load the program, then jump through the $FFFC reset vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCpu(programPath, offsetStr)
			if err != nil {
				return err
			}
			c.Reset()
			fmt.Printf("PC now at $%04X (from reset vector)\n", c.ProgramCounter)
			return nil
		},
	}

	rootCmd.AddCommand(stepCmd, runCmd, debugCmd, resetCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCpu reads the raw program file at path and pokes it into a fresh Cpu
// at the given hex load address, returning both the Cpu and the parsed
// address so callers can seed ProgramCounter themselves.
func loadCpu(path, offsetStr string) (*cpu.Cpu, uint16, error) {
	offsetVal, err := strconv.ParseUint(offsetStr, 16, 16)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid --offset %q: %w", offsetStr, err)
	}
	offset := uint16(offsetVal)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading --program: %w", err)
	}

	c := cpu.New([0x4000]byte{}, [0x4000]byte{}, &ppu.Stub{})
	c.LoadProgram([]byte(toHexProgram(raw)), offset)
	return c, offset, nil
}

// toHexProgram renders raw bytes as the whitespace-separated hex text
// LoadProgram expects, e.g. []byte{0xA9, 0x2A} -> "A9 2A".
func toHexProgram(raw []byte) string {
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// printState prints the register file, flags, and the cost of whatever Step
// or RunCycles just did.
func printState(c *cpu.Cpu, cycles uint32) {
	fmt.Printf("PC=$%04X A=$%02X X=$%02X Y=$%02X S=$%02X  cycles=%d total=%d\n",
		c.ProgramCounter, c.Accumulator, c.X, c.Y, c.Stack, cycles, c.TotalCycles)
	fmt.Printf("flags: %08b\n", c.Flags.Byte())
}
