package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harry-hov/debughover/internal/expr"
)

type extractResult struct {
	Expression string `json:"expression"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

func CmdExtract() *cobra.Command {
	var (
		line    string
		tokens  bool
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "extract START END",
		Short: "Resolve the expression under a loose 1-based column range of a line",
		Args: func(cmd *cobra.Command, args []string) error {
			if tokens {
				return cobra.MaximumNArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("line") {
				var err error
				if line, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()

			if tokens {
				return printTokens(out, line, jsonOut)
			}

			start, err := parseColumn("START", args[0])
			if err != nil {
				return err
			}
			end, err := parseColumn("END", args[1])
			if err != nil {
				return err
			}

			text, r := expr.Expression(line, start, end)
			if jsonOut {
				var res *extractResult
				if !r.IsZero() {
					res = &extractResult{Expression: text, Start: r.Start, End: r.End}
				}
				return json.NewEncoder(out).Encode(res)
			}
			if r.IsZero() {
				fmt.Fprintln(out, "no expression")
				return nil
			}
			fmt.Fprintf(out, "%s\t%d:%d\n", text, r.Start, r.End)
			return nil
		},
	}

	cmd.Flags().StringVarP(&line, "line", "l", "", "source line (read from stdin when omitted)")
	cmd.Flags().BoolVarP(&tokens, "tokens", "", false, "list every candidate token of the line instead")
	cmd.Flags().BoolVarP(&jsonOut, "json", "", false, "print JSON")

	return cmd
}

func parseColumn(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s: columns start at 1, got %d", name, n)
	}
	return n, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printTokens(out io.Writer, line string, jsonOut bool) error {
	spans := expr.Tokens(line)
	if jsonOut {
		res := make([]extractResult, 0, len(spans))
		for _, t := range spans {
			res = append(res, extractResult{Expression: t.Text(line), Start: t.Start, End: t.End})
		}
		return json.NewEncoder(out).Encode(res)
	}
	for _, t := range spans {
		fmt.Fprintf(out, "%s\t%d:%d\n", t.Text(line), t.Start, t.End)
	}
	return nil
}
