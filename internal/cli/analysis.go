package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LdDl/mr-go/mr"
	"github.com/LdDl/mr-go/plots"
	"github.com/LdDl/mr-go/trackio"
)

func newMSDCmd(root *Root) *cobra.Command {
	var (
		detail  bool
		plotDir string
	)
	cmd := &cobra.Command{
		Use:   "msd <tracks.csv>",
		Short: "Compute MSD and power-law exponent of every probe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trajs, err := root.loadTrajectories(args[0])
			if err != nil {
				return err
			}
			opts := []mr.MSDOption{mr.WithMaxInterval(root.cfg.MaxInterval)}
			if detail {
				opts = append(opts, mr.WithDetail())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "probe\tframes\tlags\texponent\tcoefficient")
			curves := make(map[string]mr.MSDCurve, len(trajs))
			for _, traj := range trajs {
				curve, err := mr.MSD(traj, root.cfg.MicronsPerPixel, root.cfg.FramesPerSecond, opts...)
				if err != nil {
					fmt.Fprintf(w, "%d\t%d\t-\t%s\t-\n", traj.Probe, traj.Len(), mr.KindOf(err))
					continue
				}
				curves[strconv.Itoa(traj.Probe)] = curve
				fit, err := mr.FitPowerLaw(curve)
				if err != nil {
					fmt.Fprintf(w, "%d\t%d\t%d\t%s\t-\n", traj.Probe, traj.Len(), len(curve), mr.KindOf(err))
					continue
				}
				fmt.Fprintf(w, "%d\t%d\t%d\t%.4f\t%.6g\n", traj.Probe, traj.Len(), len(curve), fit.Exponent, fit.Coefficient)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if plotDir != "" && len(curves) > 0 {
				if _, err := plots.NewSink(plotDir).MSD("msd", curves); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&detail, "detail", false, "compute detailed statistics (mean displacements, second moments, counts)")
	cmd.Flags().StringVar(&plotDir, "plot", "", "directory to save log-log MSD plot to")
	return cmd
}

func newEnsembleCmd(root *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensemble <tracks.csv>",
		Short: "Compute ensemble MSD of all probes and fit a power law",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trajs, err := root.loadTrajectories(args[0])
			if err != nil {
				return err
			}
			curve, fit, err := mr.EnsembleFit(trajs, root.cfg.MicronsPerPixel, root.cfg.FramesPerSecond, mr.WithMaxInterval(root.cfg.MaxInterval))
			if err != nil {
				return err
			}
			if err := trackio.WriteCurveCSV(cmd.OutOrStdout(), curve, false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exponent=%.4f coefficient=%.6g\n", fit.Exponent, fit.Coefficient)
			return nil
		},
	}
	return cmd
}

func newDriftCmd(root *Root) *cobra.Command {
	var (
		plotPath     string
		subtractPath string
	)
	cmd := &cobra.Command{
		Use:   "drift <tracks.csv>",
		Short: "Estimate collective drift of probes and optionally remove it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trajs, err := root.loadTrajectories(args[0])
			if err != nil {
				return err
			}
			drift, uncertainty, err := mr.Drift(trajs)
			if err != nil {
				return err
			}
			if err := trackio.WriteDriftCSV(cmd.OutOrStdout(), drift, uncertainty); err != nil {
				return err
			}
			if plotPath != "" {
				if err := plots.Drift(plotPath, drift, uncertainty); err != nil {
					return err
				}
			}
			if subtractPath != "" {
				corrected, err := mr.SubtractDrift(trajs, drift)
				if err != nil {
					return err
				}
				if err := root.writeTracks(subtractPath, mr.ProbeList(corrected).TrackArray()); err != nil {
					return err
				}
				mr.Diagf("wrote drift-corrected tracks to %s", subtractPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&plotPath, "plot", "", "save drift plot to this file (png, svg, pdf)")
	cmd.Flags().StringVar(&subtractPath, "subtract", "", "write drift-corrected tracks to this file")
	return cmd
}

func newClassifyCmd(root *Root) *cobra.Command {
	var splitDir string
	cmd := &cobra.Command{
		Use:   "classify <tracks.csv>",
		Short: "Classify probes as diffusive, subdiffusive or localized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trajs, err := root.loadTrajectories(args[0])
			if err != nil {
				return err
			}
			th := root.cfg.Thresholds

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "probe\texponent\tclass\tunphysical")
			for _, traj := range trajs {
				exponent, err := mr.Exponent(traj)
				if err != nil {
					fmt.Fprintf(w, "%d\t-\t%s\t-\n", traj.Probe, mr.KindOf(err))
					continue
				}
				unphysical, err := mr.IsUnphysical(traj, root.cfg.MicronsPerPixel, root.cfg.FramesPerSecond, th.Unphysical)
				if err != nil {
					return err
				}
				class := mr.Classify(exponent, th.Diffusive, th.Localized)
				fmt.Fprintf(w, "%d\t%.4f\t%s\t%t\n", traj.Probe, exponent, class, unphysical)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if splitDir == "" {
				return nil
			}
			diffusive, localized, subdiffusive, err := mr.SplitBranches(trajs, th.Diffusive, th.Localized)
			if err != nil {
				return err
			}
			branches := map[mr.MotionClass][]mr.Trajectory{
				mr.Diffusive:    diffusive,
				mr.Localized:    localized,
				mr.Subdiffusive: subdiffusive,
			}
			for class, branch := range branches {
				path := filepath.Join(splitDir, class.String()+".csv")
				if err := root.writeTracks(path, mr.ProbeList(branch).TrackArray()); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "diffusive=%d subdiffusive=%d localized=%d\n", len(diffusive), len(subdiffusive), len(localized))
			return nil
		},
	}
	cmd.Flags().StringVar(&splitDir, "split", "", "directory to write one track table per class to")
	return cmd
}
