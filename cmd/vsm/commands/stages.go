package commands

import (
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/pipeline"
)

func newStageCmd(opts *globalOptions, use, short, long string, fn stageFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStages(cmd, opts, fn)
		},
	}
}

// NewRunCmd creates the run command, an explicit form of the bare root.
func NewRunCmd(opts *globalOptions) *cobra.Command {
	return newStageCmd(opts, "run",
		"Run every stage in order",
		`Run index, model, queries and search in order, stopping at the first failure.

Examples:
  vsm run
  vsm run --config vsm.yaml`,
		(*pipeline.Pipeline).RunAll)
}

// NewIndexCmd creates the index command.
func NewIndexCmd(opts *globalOptions) *cobra.Command {
	return newStageCmd(opts, "index",
		"Build the inverted list from the corpus",
		`Read every LEIA corpus file named in the index stage file and write the
inverted list (WORD;APPEARENCE) to ESCREVA.`,
		(*pipeline.Pipeline).RunIndex)
}

// NewModelCmd creates the model command.
func NewModelCmd(opts *globalOptions) *cobra.Command {
	return newStageCmd(opts, "model",
		"Build the tf-idf vector model",
		`Read the inverted list named by LEIA, filter the vocabulary, weight every
term by tf-idf and write the vector model to ESCREVA.`,
		(*pipeline.Pipeline).RunModel)
}

// NewQueriesCmd creates the queries command.
func NewQueriesCmd(opts *globalOptions) *cobra.Command {
	return newStageCmd(opts, "queries",
		"Process the query file",
		`Read the query XML named by LEIA and write the processed queries to
CONSULTAS and the assessor rankings to ESPERADOS.`,
		(*pipeline.Pipeline).RunQueries)
}

// NewSearchCmd creates the search command.
func NewSearchCmd(opts *globalOptions) *cobra.Command {
	return newStageCmd(opts, "search",
		"Rank every query against the vector model",
		`Load the vector model named by MODELO, rank each query in CONSULTAS by
cosine similarity and write the results to RESULTADOS.`,
		(*pipeline.Pipeline).RunSearch)
}
