/*
 * calculator.go, part of deltachem.
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

//Package calc orchestrates the property-prediction pipeline: molecule
//normalization, the optional semi-empirical baseline, dispatch through the
//trained models of the resolved task plan, and aggregation of baseline and
//corrections into the final batch result. A failure on one molecule never
//aborts the batch; it surfaces as the failure sentinel in the output.
package calc

import (
	"go.uber.org/zap"

	chem "github.com/deltachem/deltachem"
	"github.com/deltachem/deltachem/geom"
	"github.com/deltachem/deltachem/models"
	"github.com/deltachem/deltachem/xtb"
)

// Options is the calculator configuration. It is read once by New and
// never modified afterwards, so a Calculator can be shared across
// sequential or concurrent Predict calls.
type Options struct {
	//Tasks is the set of properties to predict. Empty means all of them.
	//Mutually exclusive with Models.
	Tasks []chem.Property
	//Models requests explicit model names instead of properties; the
	//covered properties are inferred from the model specs.
	Models []string
	//Delta selects delta-learning: the baseline engine runs per molecule
	//and the models predict corrections to it. Otherwise models predict
	//the properties directly and no baseline is computed.
	Delta bool
	//Force3D embeds a 3D conformation for molecules that lack one.
	//Without it, a molecule without a conformation fails.
	Force3D bool
	//AddH completes valences with explicit hydrogens for molecules that
	//have none.
	AddH bool
	//XTBOpt optimizes each geometry with the baseline engine before the
	//models see it.
	XTBOpt bool
	//ReturnOptMols returns the optimized geometries along with the
	//results. Implies nothing unless XTBOpt is set.
	ReturnOptMols bool
}

// Baseline is the semi-empirical engine collaborator. One Compute call per
// molecule produces every baseline property; see xtb.Handle.
type Baseline interface {
	Compute(mol *chem.Molecule, optimize bool) (chem.Result, *chem.Molecule, error)
}

// Calculator composes the prediction pipeline. Build one with New; the
// configuration and resolved task plan are immutable afterwards.
type Calculator struct {
	opts     Options
	mode     models.Mode
	plan     *Plan
	registry *models.Registry
	provider models.Provider
	baseline Baseline
	embedder geom.Embedder
	log      *zap.Logger
}

// Option customizes a Calculator's collaborators.
type Option func(*Calculator)

// WithRegistry replaces the default model registry.
func WithRegistry(r *models.Registry) Option { return func(c *Calculator) { c.registry = r } }

// WithProvider sets the model provider. A provider is required.
func WithProvider(p models.Provider) Option { return func(c *Calculator) { c.provider = p } }

// WithBaseline replaces the default xtb baseline engine.
func WithBaseline(b Baseline) Option { return func(c *Calculator) { c.baseline = b } }

// WithEmbedder replaces the default Open Babel structure preparation.
func WithEmbedder(e geom.Embedder) Option { return func(c *Calculator) { c.embedder = e } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(c *Calculator) { c.log = l } }

// New builds a Calculator and resolves its task plan. Configuration
// errors (both Tasks and Models given, unknown property keys, model/mode
// mismatches, missing provider) are reported here, before any computation
// can start.
func New(opts Options, extra ...Option) (*Calculator, error) {
	c := &Calculator{
		opts:     opts,
		mode:     models.Direct,
		registry: models.Default(),
		baseline: xtb.NewHandle(),
		embedder: geom.NewOpenBabel(),
		log:      zap.NewNop(),
	}
	if opts.Delta {
		c.mode = models.Delta
	}
	for _, o := range extra {
		o(c)
	}
	if c.provider == nil {
		return nil, chem.NewError("calc: no model provider configured")
	}
	plan, err := Resolve(c.registry, opts.Tasks, opts.Models, c.mode)
	if err != nil {
		return nil, err
	}
	c.plan = plan
	names := make([]string, len(plan.Specs))
	for i, s := range plan.Specs {
		names[i] = s.Name
	}
	c.log.Debug("resolved task plan",
		zap.String("mode", string(c.mode)),
		zap.Strings("models", names),
		zap.Int("properties", len(plan.Props)))
	return c, nil
}

// Plan returns the resolved task plan.
func (c *Calculator) Plan() *Plan { return c.plan }

// Prediction is the outcome of one Predict call.
type Prediction struct {
	//Results maps every requested property to a slice of per-molecule
	//values, index-aligned with the input batch. Molecules that failed at
	//any stage hold the failure sentinel for every property.
	Results chem.BatchResult
	//OptMols holds the baseline-optimized geometries, index-aligned with
	//the input, when both XTBOpt and ReturnOptMols are set. Entries for
	//failed molecules are nil.
	OptMols []*chem.Molecule
	//Changes records, per molecule, what normalization did.
	Changes []Change
	//Failed flags the molecules that failed at any stage.
	Failed []bool
}

// Predict runs the pipeline over the given molecules. The inputs are never
// modified; all work happens on derived copies. Per-molecule failures do
// not abort the batch and are reported as sentinels in the results; the
// returned error is reserved for internal-consistency problems, which
// signal a pipeline bug rather than a data problem.
func (c *Calculator) Predict(mols ...*chem.Molecule) (*Prediction, error) {
	n := len(mols)
	work, changes, failed := c.normalize(mols)
	var baseline []chem.Result
	var optmols []*chem.Molecule
	if c.opts.Delta || c.opts.XTBOpt {
		baseline, optmols = c.runBaseline(work, failed)
	}
	outs, err := c.runModels(work, failed)
	if err != nil {
		return nil, err
	}
	results, err := aggregate(c.plan.Props, work, baseline, outs, failed)
	if err != nil {
		return nil, err
	}
	pred := &Prediction{Results: results, Changes: changes, Failed: failed}
	if c.opts.XTBOpt && c.opts.ReturnOptMols {
		pred.OptMols = optmols
	}
	nfailed := 0
	for _, f := range failed {
		if f {
			nfailed++
		}
	}
	c.log.Info("prediction finished",
		zap.Int("molecules", n),
		zap.Int("failed", nfailed),
		zap.Int("properties", len(c.plan.Props)))
	return pred, nil
}

// runBaseline invokes the semi-empirical engine once per eligible
// molecule. The single run serves every requested property and every
// delta model. When geometry optimization is on, the optimized coordinates
// replace the working molecule for all later stages.
func (c *Calculator) runBaseline(work []*chem.Molecule, failed []bool) ([]chem.Result, []*chem.Molecule) {
	baseline := make([]chem.Result, len(work))
	optmols := make([]*chem.Molecule, len(work))
	for i, mol := range work {
		if failed[i] {
			continue
		}
		res, opt, err := c.baseline.Compute(mol, c.opts.XTBOpt)
		if err != nil {
			failed[i] = true
			c.log.Warn("baseline calculation failed",
				zap.Int("molecule", i),
				zap.String("name", mol.Name),
				zap.Error(err))
			continue
		}
		baseline[i] = res
		if opt != nil {
			optmols[i] = opt
			work[i] = opt
		}
	}
	return baseline, optmols
}
