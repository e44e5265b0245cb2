package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/navrouter/internal/errors"
	"github.com/vango-dev/navrouter/pkg/router"
	"github.com/vango-dev/navrouter/pkg/routepath"
)

type matchOutput struct {
	Matched       bool              `json:"matched"`
	Pattern       string            `json:"pattern,omitempty"`
	MatchedPath   string            `json:"matchedPath,omitempty"`
	Params        map[string]string `json:"params,omitempty"`
	RemainingPath string            `json:"remainingPath,omitempty"`
}

func matchCmd(load configLoader) *cobra.Command {
	var (
		prefix       bool
		preserveCase bool
		origin       string
	)

	cmd := &cobra.Command{
		Use:   "match <url> <pattern>...",
		Short: "Match a URL against route patterns",
		Long: `Match a URL against route patterns and print the result as JSON.

Pattern segments starting with ":" capture the URL segment at the same
position. Literal segments compare case-insensitively. Given several
patterns, they are tried in order and the first match is reported in
"pattern".

Examples:
  navrouter match /users/42 /users/:id
  navrouter match --prefix /users/42/posts /users/:id
  navrouter match /users/new /users/new /users/:id`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if origin == "" {
				origin = cfg.Origin
			}

			opts := []router.MatchOption{
				router.WithExact(!prefix),
				router.WithOrigin(origin),
			}
			if preserveCase || cfg.PreserveParamCase {
				opts = append(opts, router.PreserveParamCase())
			}

			out, err := runMatch(args[0], args[1:], opts)
			if err != nil {
				return errors.New("E201").Wrap(err).
					WithDetail("Could not parse " + args[0])
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVarP(&prefix, "prefix", "p", false, "Allow the URL to have more segments than the pattern")
	cmd.Flags().BoolVar(&preserveCase, "preserve-case", false, "Keep parameter values as written")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin for relative URLs (default from config)")

	return cmd
}

// runMatch tries each pattern in order; the first match wins.
func runMatch(url string, patterns []string, opts []router.MatchOption) (matchOutput, error) {
	for _, pattern := range patterns {
		res, ok, err := router.Match(url, pattern, opts...)
		if err != nil {
			return matchOutput{}, err
		}
		if !ok {
			continue
		}
		out := matchOutput{
			Matched:       true,
			MatchedPath:   res.MatchedPath,
			Params:        res.Params,
			RemainingPath: res.RemainingPath,
		}
		if len(patterns) > 1 {
			out.Pattern = pattern
		}
		return out, nil
	}
	return matchOutput{}, nil
}

func normalizeCmd(load configLoader) *cobra.Command {
	var origin string

	cmd := &cobra.Command{
		Use:   "normalize <url>",
		Short: "Print the canonical form of a URL",
		Long: `Resolve a URL against the origin and lower-case it, the way Match
does before comparing segments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if origin == "" {
				origin = cfg.Origin
			}
			normalized := routepath.Normalize(args[0], origin)
			if _, err := routepath.Parse(normalized); err != nil {
				return errors.New("E201").Wrap(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "Origin for relative URLs (default from config)")
	return cmd
}
