// Package cli implements the mr command line.
package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/LdDl/mr-go/config"
	"github.com/LdDl/mr-go/mr"
	"github.com/LdDl/mr-go/trackio"
)

// Root holds state shared by every subcommand
type Root struct {
	cfg        config.Analysis
	configPath string
	mpp        float64
	fps        float64
	verbose    bool
}

// NewRootCmd creates the root Cobra command
func NewRootCmd() *cobra.Command {
	root := &Root{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "mr",
		Short: "mr computes motion statistics of tracked particles",
		Long: `mr post-processes particle tracking data: mean squared displacement, ensemble MSD,
drift estimation and correction, and mobility classification of probes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.prepare(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&root.configPath, "config", "", "YAML analysis configuration")
	flags.Float64Var(&root.mpp, "mpp", 0, "microns per pixel (overrides configuration)")
	flags.Float64Var(&root.fps, "fps", 0, "frames per second (overrides configuration)")
	flags.BoolVarP(&root.verbose, "verbose", "v", false, "print diagnostics to stderr")

	rootCmd.AddCommand(newMSDCmd(root))
	rootCmd.AddCommand(newEnsembleCmd(root))
	rootCmd.AddCommand(newDriftCmd(root))
	rootCmd.AddCommand(newClassifyCmd(root))
	rootCmd.AddCommand(newTrackCmd(root))
	rootCmd.AddCommand(newImportCmd(root))

	return rootCmd
}

// prepare loads configuration, applies flag overrides and sets up logging
func (root *Root) prepare(cmd *cobra.Command) error {
	if root.configPath != "" {
		cfg, err := config.Load(root.configPath)
		if err != nil {
			return err
		}
		root.cfg = cfg
	}
	if cmd.Flags().Changed("mpp") {
		root.cfg.MicronsPerPixel = root.mpp
	}
	if cmd.Flags().Changed("fps") {
		root.cfg.FramesPerSecond = root.fps
	}
	if err := root.cfg.Validate(); err != nil {
		return err
	}

	writers := mr.LogWriters{Ops: cmd.ErrOrStderr()}
	if root.verbose {
		writers.Diag = cmd.ErrOrStderr()
	}
	mr.SetLogWriters(writers)
	return nil
}

func (root *Root) layout() (trackio.Layout, error) {
	return trackio.ParseLayout(root.cfg.Layout)
}

// loadTrajectories reads a track table and splits it into trajectories
func (root *Root) loadTrajectories(path string) ([]mr.Trajectory, error) {
	layout, err := root.layout()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open tracks %s", path)
	}
	defer f.Close()

	ta, err := trackio.ReadCSV(f, layout)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read tracks %s", path)
	}
	probes, err := mr.SplitByProbe(ta)
	if err != nil {
		return nil, err
	}
	mr.Diagf("read %d probes (%d rows) from %s", len(probes), len(ta), path)
	return []mr.Trajectory(probes), nil
}

// writeTracks writes track array to path in the configured layout
func (root *Root) writeTracks(path string, ta mr.TrackArray) error {
	layout, err := root.layout()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Can't create %s", path)
	}
	if err := trackio.WriteCSV(f, ta, layout); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
