// Command uspec checks values against the built-in named constraints and
// emits random conforming samples from their matched generators.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sparkfund/uspec"
	"github.com/sparkfund/uspec/app"
)

var rootCmd = &cobra.Command{
	Use:   "uspec",
	Short: "uspec validates values and generates conforming test data.",
	Long: `uspec pairs parameterized validators with matched random generators.
Every named constraint can check a value (check), emit samples that are
guaranteed to pass its own validation (gen), and verify that guarantee
(selfcheck).`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered constraint names",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range uspec.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var (
	jsonFile string
	jsonPath string
)

var checkCmd = &cobra.Command{
	Use:   "check <constraint> [value]",
	Short: "Check a value against a named constraint",
	Long: `Check a value against a named constraint. The value is taken from the
argument, or extracted from a JSON document with --json and --path.
Exits non-zero when the value does not conform.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := lookup(args[0])
		if err != nil {
			return err
		}
		value, err := checkedValue(args)
		if err != nil {
			return err
		}
		if rs := c.Conform(value); rs.IsError() {
			color.Red("INVALID %s: %q", args[0], value)
			return rs.Error()
		}
		color.Green("OK %s: %q", args[0], value)
		return nil
	},
}

var (
	sampleCount int
	checkDraws  int
	seed        int64
)

var genCmd = &cobra.Command{
	Use:   "gen <constraint>",
	Short: "Generate conforming sample values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := lookup(args[0])
		if err != nil {
			return err
		}
		n := 0
		for v := range c.Stream(effectiveSeed()) {
			fmt.Fprintln(cmd.OutOrStdout(), v)
			if n++; n >= sampleCount {
				break
			}
		}
		return nil
	},
}

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Verify every registered generator against its own predicate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		failed := false
		for _, name := range uspec.Names() {
			c := uspec.Lookup(name).MustGet()
			if err := c.Check(effectiveSeed(), checkDraws); err != nil {
				color.Red("FAIL %s: %v", name, err)
				failed = true
				continue
			}
			color.Green("PASS %s", name)
		}
		return lo.Ternary(failed, fmt.Errorf("selfcheck failed"), nil)
	},
}

func lookup(name string) (uspec.Constraint[string], error) {
	op := uspec.Lookup(name)
	if op.IsAbsent() {
		return uspec.Constraint[string]{}, fmt.Errorf("unknown constraint %q, see `uspec list`", name)
	}
	return op.MustGet(), nil
}

// checkedValue resolves the value under test: a literal argument, or a
// string extracted from a JSON document.
func checkedValue(args []string) (string, error) {
	if jsonFile == "" {
		if len(args) < 2 {
			return "", fmt.Errorf("a value argument or --json is required")
		}
		return args[1], nil
	}
	bts, err := os.ReadFile(jsonFile)
	if err != nil {
		return "", err
	}
	res := gjson.GetBytes(bts, jsonPath)
	if !res.Exists() {
		return "", fmt.Errorf("path %q not found in %s", jsonPath, jsonFile)
	}
	return res.String(), nil
}

// effectiveSeed prefers the flag, then uspec.yml, then the clock.
func effectiveSeed() int64 {
	if seed != 0 {
		return seed
	}
	if rs := app.Config(); rs.IsOk() {
		if s := rs.MustGet().GetInt64("generate.seed"); s != 0 {
			return s
		}
	}
	return time.Now().UnixNano()
}

func init() {
	checkCmd.Flags().StringVar(&jsonFile, "json", "", "JSON document to extract the value from")
	checkCmd.Flags().StringVar(&jsonPath, "path", "", "gjson path of the value inside --json")
	genCmd.Flags().IntVarP(&sampleCount, "count", "n", defaultSampleCount(), "number of samples to emit")
	genCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed (0 picks one from config or the clock)")
	selfcheckCmd.Flags().IntVarP(&checkDraws, "count", "n", 100, "draws per constraint")
	selfcheckCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed (0 picks one from config or the clock)")
	rootCmd.AddCommand(listCmd, checkCmd, genCmd, selfcheckCmd)
}

func defaultSampleCount() int {
	if rs := app.Config(); rs.IsOk() {
		if n := rs.MustGet().GetInt("generate.count"); n > 0 {
			return n
		}
	}
	return 10
}

func main() {
	registerBuiltins()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
