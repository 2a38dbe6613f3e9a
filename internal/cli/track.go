package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/LdDl/mr-go/featurestore"
	"github.com/LdDl/mr-go/mot"
	"github.com/LdDl/mr-go/mr"
	"github.com/LdDl/mr-go/trackio"
)

func newTrackCmd(root *Root) *cobra.Command {
	var (
		dbPath    string
		output    string
		selection mr.Selection
	)
	cmd := &cobra.Command{
		Use:   "track --db <features.db>",
		Short: "Link stored detections into tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := featurestore.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			linking := root.cfg.Linking
			algorithm, err := mot.ParseMatchingAlgorithm(linking.Algorithm)
			if err != nil {
				return err
			}
			opts := []mot.TrackerOption{mot.WithAlgorithm(algorithm)}
			if linking.Predict {
				opts = append(opts, mot.WithPrediction(1.0/root.cfg.FramesPerSecond))
			}

			var tracker mr.Tracker = mot.NewTracker(store, opts...)
			session, err := tracker.Open(ctx)
			if err != nil {
				return err
			}
			ta, err := session.Track(ctx, selection, linking.Params())
			if err != nil {
				session.Close()
				return err
			}
			if err := session.Close(); err != nil {
				return err
			}

			if output == "" {
				return trackio.WriteCSV(cmd.OutOrStdout(), ta, trackio.CoreLayout)
			}
			return root.writeTracks(output, ta)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "feature store database")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write tracks to this file in the configured layout (default: stdout, core layout)")
	cmd.Flags().IntVar(&selection.Trial, "trial", 0, "trial to link (0 = any)")
	cmd.Flags().IntVar(&selection.Stack, "stack", 0, "stack to link (0 = any)")
	cmd.Flags().IntVar(&selection.FrameStart, "from", 0, "first frame (0 = no limit)")
	cmd.Flags().IntVar(&selection.FrameEnd, "to", 0, "last frame (0 = no limit)")
	cmd.Flags().Float64Var(&selection.MinMass, "min-mass", 0, "smallest integrated brightness of a detection")
	cmd.MarkFlagRequired("db")
	return cmd
}

func newImportCmd(root *Root) *cobra.Command {
	var (
		dbPath string
		trial  int
		stack  int
	)
	cmd := &cobra.Command{
		Use:   "import --db <features.db> <detections.csv>",
		Short: "Load per-frame detections into the feature store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "Can't open detections %s", args[0])
			}
			defer f.Close()
			samples, err := trackio.ReadDetections(f)
			if err != nil {
				return errors.Wrapf(err, "Can't read detections %s", args[0])
			}

			ctx := cmd.Context()
			store, err := featurestore.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			features := make([]featurestore.Feature, len(samples))
			for i, sample := range samples {
				features[i] = featurestore.Feature{Trial: trial, Stack: stack, Sample: sample}
			}
			if err := store.Insert(ctx, features); err != nil {
				return err
			}
			mr.Opsf("imported %d detections into %s (trial %d, stack %d)", len(features), dbPath, trial, stack)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "feature store database")
	cmd.Flags().IntVar(&trial, "trial", 0, "trial the detections belong to")
	cmd.Flags().IntVar(&stack, "stack", 0, "stack the detections belong to")
	cmd.MarkFlagRequired("db")
	return cmd
}
