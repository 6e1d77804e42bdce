// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model

// ScoreCategory names a node in the sustainability score tree.
type ScoreCategory string

const (
	ScoreRoot              ScoreCategory = "root"
	ScoreDataAvailability  ScoreCategory = "data_availability"
	ScoreProducerKnown     ScoreCategory = "producer_known"
	ScoreCategoryAssigned  ScoreCategory = "category_assigned"
	ScoreProductionPlace   ScoreCategory = "production_place_known"
	ScoreIdKnown           ScoreCategory = "id_known"
	ScoreCategoryBranch    ScoreCategory = "category"
	ScoreWarrantyLength    ScoreCategory = "warranty_length"
	ScoreNumCerts          ScoreCategory = "num_certs"
	ScoreAtLeastOneCert    ScoreCategory = "at_least_one_cert"
	ScoreAtLeastTwoCerts   ScoreCategory = "at_least_two_certs"
)

// ScoreBranch is one evaluated node of the score tree: its own weighted
// score together with the already-evaluated children that produced it.
type ScoreBranch struct {
	Category ScoreCategory `json:"category"`
	Weight   int           `json:"weight"`
	Score    float64       `json:"score"`
	Branches []ScoreBranch `json:"branches,omitempty"`
}

// ScoreResult is the full evaluated tree plus its root score, stored
// verbatim on a canonical Product so the final number is always
// reconstructible from its contributing leaves.
type ScoreResult struct {
	Tree  []ScoreBranch `json:"tree"`
	Total float64       `json:"total"`
}

// scoreLeaf is a tree node with no children: its score is supplied
// directly rather than computed from a weighted average of branches.
type scoreLeaf struct {
	category ScoreCategory
	weight   int
	score    float64
}

// scoreNode is either a leaf with a fixed score or a branch whose score is
// the weighted average of its own children, computed bottom-up.
type scoreNode struct {
	leaf     *scoreLeaf
	category ScoreCategory
	weight   int
	children []scoreNode
}

func (n scoreNode) evaluate() ScoreBranch {
	if n.leaf != nil {
		return ScoreBranch{Category: n.leaf.category, Weight: n.leaf.weight, Score: n.leaf.score}
	}

	branches := make([]ScoreBranch, 0, len(n.children))
	var totalWeight int
	var totalScore float64
	for _, child := range n.children {
		b := child.evaluate()
		branches = append(branches, b)
		totalWeight += b.Weight
		totalScore += b.Score * float64(b.Weight)
	}

	score := 0.0
	if totalWeight != 0 {
		score = totalScore / float64(totalWeight)
	}

	return ScoreBranch{Category: n.category, Weight: n.weight, Score: score, Branches: branches}
}

func leafNode(category ScoreCategory, weight int, score float64) scoreNode {
	return scoreNode{leaf: &scoreLeaf{category: category, weight: weight, score: score}}
}

// CalculateScore evaluates the fixed sustainability score tree for a
// canonical Product. The tree's shape and weights are fixed; only the
// leaf scores vary with the product's own data.
func CalculateScore(p Product) ScoreResult {
	hasProducer := len(p.Manufacturers) > 0
	hasCategories := len(p.Categories) > 0
	hasIds := len(p.Ids.Eans) > 0 || len(p.Ids.Gtins) > 0 || len(p.Ids.Wiki) > 0
	numCerts := p.Certifications.Count()

	var categoryContributions []scoreNode
	for _, c := range p.Categories {
		if c.Text == "smartphone" {
			categoryContributions = append(categoryContributions, leafNode(ScoreWarrantyLength, 1, 0.5))
			break
		}
	}

	tree := scoreNode{
		category: ScoreRoot,
		weight:   1,
		children: []scoreNode{
			{
				category: ScoreDataAvailability,
				weight:   1,
				children: []scoreNode{
					leafNode(ScoreProducerKnown, 1, boolScore(hasProducer)),
					leafNode(ScoreCategoryAssigned, 1, boolScore(hasCategories)),
					// Production place is never asserted by any wired source yet.
					leafNode(ScoreProductionPlace, 1, 0.5),
					leafNode(ScoreIdKnown, 1, boolScore(hasIds)),
				},
			},
			{
				category: ScoreCategoryBranch,
				weight:   2,
				children: categoryContributions,
			},
			{
				category: ScoreNumCerts,
				weight:   2,
				children: []scoreNode{
					leafNode(ScoreAtLeastOneCert, 1, zeroOneScore(numCerts > 0)),
					leafNode(ScoreAtLeastTwoCerts, 2, zeroOneScore(numCerts > 1)),
				},
			},
		},
	}

	root := tree.evaluate()
	return ScoreResult{Tree: root.Branches, Total: root.Score}
}

// boolScore maps presence to the spec's 1.0/0.5 "known vs assumed" scale.
func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.5
}

// zeroOneScore maps a plain boolean condition to 1.0/0.0.
func zeroOneScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
