/*
 * predict.go, part of deltachem.
 *
 * Copyright 2023 The deltachem developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	chem "github.com/deltachem/deltachem"
	"github.com/deltachem/deltachem/calc"
	"github.com/deltachem/deltachem/models"
)

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict [flags] input.(sdf|xyz)",
		Short: "Predict properties for the molecules in a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPredict,
	}
	f := cmd.Flags()
	f.StringSlice("tasks", nil, "property keys to predict (default: all); mutually exclusive with --models")
	f.StringSlice("models", nil, "explicit model names; mutually exclusive with --tasks")
	f.Bool("delta", true, "delta-learning mode (baseline + learned correction)")
	f.Bool("force3d", false, "embed a 3D conformation for molecules lacking one")
	f.Bool("addh", true, "add explicit hydrogens to molecules lacking them")
	f.Bool("xtbopt", false, "optimize geometries with the baseline engine first")
	f.Bool("return-optmols", false, "write optimized geometries next to the output")
	f.String("backend", "", "model runner command, e.g. \"deltachem-runner --weights dir/\" (required)")
	f.String("specs", "", "directory of model spec artifacts overriding the built-in registry")
	f.StringP("output", "o", "-", "output file for the JSON results (- for stdout)")
	viper.BindPFlags(f)
	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	mols, err := readMolecules(args[0])
	if err != nil {
		return err
	}
	log.Info("read input", zap.String("file", args[0]), zap.Int("molecules", len(mols)))

	backend := viper.GetString("backend")
	if backend == "" {
		return chem.NewError("a model backend is required (--backend)")
	}
	fields := strings.Fields(backend)
	provider := &models.ExecProvider{Command: fields[0], Args: fields[1:]}

	opts := calc.Options{
		Delta:         viper.GetBool("delta"),
		Force3D:       viper.GetBool("force3d"),
		AddH:          viper.GetBool("addh"),
		XTBOpt:        viper.GetBool("xtbopt"),
		ReturnOptMols: viper.GetBool("return-optmols"),
		Models:        viper.GetStringSlice("models"),
	}
	for _, t := range viper.GetStringSlice("tasks") {
		opts.Tasks = append(opts.Tasks, chem.Property(t))
	}
	extra := []calc.Option{calc.WithProvider(provider), calc.WithLogger(log)}
	if dir := viper.GetString("specs"); dir != "" {
		reg, err := models.LoadDir(dir)
		if err != nil {
			return err
		}
		extra = append(extra, calc.WithRegistry(reg))
	}
	c, err := calc.New(opts, extra...)
	if err != nil {
		return err
	}
	pred, err := c.Predict(mols...)
	if err != nil {
		return err
	}
	if err := writeResults(viper.GetString("output"), pred.Results); err != nil {
		return err
	}
	if pred.OptMols != nil {
		delivered := make([]*chem.Molecule, 0, len(pred.OptMols))
		for _, m := range pred.OptMols {
			if m != nil {
				delivered = append(delivered, m)
			}
		}
		if err := chem.SDFWrite(args[0]+".opt.sdf", delivered...); err != nil {
			return err
		}
	}
	return nil
}

func readMolecules(path string) ([]*chem.Molecule, error) {
	switch {
	case strings.HasSuffix(path, ".sdf") || strings.HasSuffix(path, ".mol"):
		return chem.SDFRead(path)
	case strings.HasSuffix(path, ".xyz"):
		mol, err := chem.XYZRead(path)
		if err != nil {
			return nil, err
		}
		return []*chem.Molecule{mol}, nil
	}
	return nil, chem.NewError("unsupported input format: %s", path)
}

func writeResults(path string, res chem.BatchResult) error {
	out := os.Stdout
	if path != "-" && path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
