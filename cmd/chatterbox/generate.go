package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/CTAG07/chatterbox/pkg/markov"
)

// trainFlags are the flags shared by every command that builds an
// ephemeral model before doing its work.
type trainFlags struct {
	corpora     []string
	file        string
	order       int
	keepCase    bool
	keepNonWord bool
	seed        uint64
}

func (tf *trainFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&tf.corpora, "corpus", nil, "stored corpus to train on (repeatable)")
	cmd.Flags().StringVar(&tf.file, "file", "", "file to train on, in addition to any stored corpora")
	cmd.Flags().IntVar(&tf.order, "order", 0, "chain order (0 uses the configured default)")
	cmd.Flags().BoolVar(&tf.keepCase, "keep-case", false, "keep word casing instead of lowercasing")
	cmd.Flags().BoolVar(&tf.keepNonWord, "keep-nonword", false, "keep punctuation and other non-word characters")
	cmd.Flags().Uint64Var(&tf.seed, "seed", 0, "RNG seed for reproducible output")
}

// trainOptions maps the opt-out flags onto the library's normalization
// options, which default to enabled.
func (tf *trainFlags) trainOptions() []markov.TrainOption {
	return []markov.TrainOption{
		markov.WithCaseFolding(!tf.keepCase),
		markov.WithNonWordStripping(!tf.keepNonWord),
	}
}

// buildModel trains a model from the stored corpora and/or file named by
// the flags. The model only lives for this invocation; nothing trained is
// ever written back to the database.
func buildModel(cmd *cobra.Command, a *app, tf *trainFlags) (*markov.Model, error) {
	order := tf.order
	if order <= 0 {
		order = a.config.DefaultOrder
	}

	model, err := markov.NewModel(order)
	if err != nil {
		return nil, err
	}
	model.SetLogger(a.logger)
	if cmd.Flags().Changed("seed") {
		model.SetRand(rand.New(rand.NewPCG(tf.seed, 0)))
	}

	opts := tf.trainOptions()

	trained := false
	if len(tf.corpora) > 0 {
		r, err := a.store.Reader(cmd.Context(), tf.corpora...)
		if err != nil {
			return nil, err
		}
		if err = model.Train(r, opts...); err != nil {
			return nil, fmt.Errorf("training from stored corpora: %w", err)
		}
		trained = true
	}
	if tf.file != "" {
		f, err := os.Open(tf.file)
		if err != nil {
			return nil, err
		}
		err = model.Train(f, opts...)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("training from %s: %w", tf.file, err)
		}
		trained = true
	}
	if !trained {
		return nil, errors.New("no training input: pass --corpus and/or --file")
	}

	return model, nil
}

func newGenerateCmd(cfgPath *string) *cobra.Command {
	var (
		tf          trainFlags
		words       int
		count       int
		startWord   string
		noSentences bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate text from stored corpora or a file",
		Long: `Generate builds a model from the named corpora and/or file, performs a
weighted random walk over it, and prints the resulting text. Sentence mode
(the default) starts from a capitalized word and trims the output back to
sentence-ending punctuation; it needs training text with case and
punctuation intact, so combine it with --keep-case and --keep-nonword.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			model, err := buildModel(cmd, a, &tf)
			if err != nil {
				return err
			}

			if words <= 0 {
				words = a.config.DefaultWords
			}
			var genOpts []markov.GenerateOption
			if noSentences {
				genOpts = append(genOpts, markov.WithSentences(false))
			}
			if startWord != "" {
				genOpts = append(genOpts, markov.WithStartWord(startWord))
			}

			for i := 0; i < count; i++ {
				out, err := model.Generate(words, genOpts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	tf.register(cmd)
	cmd.Flags().IntVar(&words, "words", 0, "walk length in words (0 uses the configured default)")
	cmd.Flags().IntVar(&count, "count", 1, "number of texts to generate")
	cmd.Flags().StringVar(&startWord, "start", "", "start the walk from this word instead of a random one")
	cmd.Flags().BoolVar(&noSentences, "no-sentences", false, "disable sentence mode")

	return cmd
}
