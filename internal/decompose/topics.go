package decompose

import (
	"fmt"

	"github.com/tutorloop/tutorloop/internal/graph"
)

// Built-in topic trees. Node sets are returned fresh on every call so each
// goal owns an independent graph.

func rlNodes() []graph.Node {
	return []graph.Node{
		{
			Concept:              "Markov Decision Process",
			DifficultyScore:      0.3,
			EstimatedTimeMinutes: 20,
			Misconceptions: []string{
				"MDP assumes full observability",
				"States must be discrete",
				"Reward always comes from environment",
			},
			Examples: []string{
				"Grid world navigation",
				"Robot arm control",
				"Chess game states",
			},
			TransferChallenges: []string{
				"Design MDP for elevator scheduling",
				"Identify states for autonomous driving",
			},
		},
		{
			Concept:              "Neural Networks",
			DifficultyScore:      0.4,
			EstimatedTimeMinutes: 30,
			Misconceptions: []string{
				"More layers always better",
				"Activation functions are optional",
				"Backpropagation requires calculus knowledge",
			},
			Examples: []string{
				"Multi-layer perceptron",
				"Forward and backward pass",
				"Common activation functions",
			},
			TransferChallenges: []string{
				"Design network for binary classification",
				"Explain vanishing gradient problem",
			},
		},
		{
			Concept:              "Value Functions",
			Prerequisites:        []string{"Markov Decision Process"},
			DifficultyScore:      0.4,
			EstimatedTimeMinutes: 25,
			Misconceptions: []string{
				"Value is immediate reward",
				"Q-value and V-value are the same",
				"Values don't depend on policy",
			},
			Examples: []string{
				"V(s) in grid world",
				"Q(s,a) for action selection",
				"Optimal vs. arbitrary policy values",
			},
			TransferChallenges: []string{
				"Calculate V* for simple MDP",
				"Explain why Q* enables optimal action selection",
			},
		},
		{
			Concept:              "Bellman Equations",
			Prerequisites:        []string{"Value Functions"},
			DifficultyScore:      0.5,
			EstimatedTimeMinutes: 30,
			Misconceptions: []string{
				"Bellman equation is only for deterministic transitions",
				"Expectation is over states, not actions",
				"Discount factor is optional",
			},
			Examples: []string{
				"Bellman expectation equation derivation",
				"Bellman optimality equation",
				"Iterative value calculation",
			},
			TransferChallenges: []string{
				"Derive Bellman for custom MDP",
				"Explain role of discount factor with examples",
			},
		},
		{
			Concept:              "Q-Learning",
			Prerequisites:        []string{"Bellman Equations"},
			DifficultyScore:      0.6,
			EstimatedTimeMinutes: 35,
			Misconceptions: []string{
				"Q-learning requires model of environment",
				"Learning rate should be constant",
				"Q-learning converges without exploration",
			},
			Examples: []string{
				"Q-table update rule",
				"Epsilon-greedy exploration",
				"Simple grid world implementation",
			},
			TransferChallenges: []string{
				"Implement Q-learning for cliff walking",
				"Explain exploration-exploitation tradeoff",
			},
		},
		{
			Concept:              "Policy Gradients",
			Prerequisites:        []string{"Value Functions"},
			DifficultyScore:      0.7,
			EstimatedTimeMinutes: 45,
			Misconceptions: []string{
				"Policy gradient methods don't use value functions",
				"REINFORCE has low variance",
				"Baseline must be value function",
			},
			Examples: []string{
				"REINFORCE algorithm",
				"Actor-critic methods",
				"Advantage estimation",
			},
			TransferChallenges: []string{
				"Derive policy gradient theorem",
				"Implement REINFORCE for simple task",
			},
		},
		{
			Concept:              "Deep Q-Networks",
			Prerequisites:        []string{"Q-Learning", "Neural Networks"},
			DifficultyScore:      0.7,
			EstimatedTimeMinutes: 40,
			Misconceptions: []string{
				"DQN just replaces Q-table with neural net",
				"Experience replay slows learning",
				"Target network is for stability, not accuracy",
			},
			Examples: []string{
				"Atari game playing",
				"Experience replay buffer",
				"Target network updates",
			},
			TransferChallenges: []string{
				"Design DQN architecture for CartPole",
				"Explain why vanilla Q-learning fails with function approximation",
			},
		},
	}
}

func deepLearningNodes() []graph.Node {
	return []graph.Node{
		{
			Concept:              "Neural Network Fundamentals",
			DifficultyScore:      0.3,
			EstimatedTimeMinutes: 25,
			Misconceptions:       []string{"Networks memorize, not generalize", "Deeper is always better"},
			Examples:             []string{"Perceptron", "Activation functions", "Forward pass"},
			TransferChallenges:   []string{"Build 2-layer network from scratch"},
		},
		{
			Concept:              "Backpropagation",
			Prerequisites:        []string{"Neural Network Fundamentals"},
			DifficultyScore:      0.5,
			EstimatedTimeMinutes: 35,
			Misconceptions:       []string{"Backprop requires symbolic differentiation", "All gradients same magnitude"},
			Examples:             []string{"Chain rule", "Gradient computation", "Weight updates"},
			TransferChallenges:   []string{"Compute gradients for simple network manually"},
		},
		{
			Concept:              "Optimization and Regularization",
			Prerequisites:        []string{"Backpropagation"},
			DifficultyScore:      0.6,
			EstimatedTimeMinutes: 30,
			Misconceptions:       []string{"Lower training loss means better model", "Dropout only helps small networks"},
			Examples:             []string{"SGD vs Adam", "Weight decay", "Early stopping"},
			TransferChallenges:   []string{"Diagnose an overfitting training curve"},
		},
	}
}

func mlNodes() []graph.Node {
	return []graph.Node{
		{
			Concept:              "Supervised Learning",
			DifficultyScore:      0.2,
			EstimatedTimeMinutes: 20,
			Misconceptions:       []string{"More data always better", "Complex models always overfit"},
			Examples:             []string{"Classification", "Regression", "Training data"},
			TransferChallenges:   []string{"Identify supervised tasks in real scenarios"},
		},
		{
			Concept:              "Model Evaluation",
			Prerequisites:        []string{"Supervised Learning"},
			DifficultyScore:      0.4,
			EstimatedTimeMinutes: 25,
			Misconceptions:       []string{"Accuracy is always the right metric", "Test data can guide model tuning"},
			Examples:             []string{"Train/test split", "Precision and recall", "Cross-validation"},
			TransferChallenges:   []string{"Choose a metric for an imbalanced fraud dataset"},
		},
		{
			Concept:              "Bias-Variance Tradeoff",
			Prerequisites:        []string{"Model Evaluation"},
			DifficultyScore:      0.5,
			EstimatedTimeMinutes: 25,
			Misconceptions:       []string{"Bias and variance can both be zero", "Regularization only reduces variance"},
			Examples:             []string{"Underfitting vs overfitting", "Learning curves"},
			TransferChallenges:   []string{"Explain a validation gap in terms of bias and variance"},
		},
	}
}

func algorithmsNodes() []graph.Node {
	return []graph.Node{
		{
			Concept:              "Asymptotic Analysis",
			DifficultyScore:      0.3,
			EstimatedTimeMinutes: 20,
			Misconceptions:       []string{"Big-O describes exact running time", "Constants never matter"},
			Examples:             []string{"O(n) vs O(n log n)", "Worst vs average case"},
			TransferChallenges:   []string{"Compare two loop structures by growth rate"},
		},
		{
			Concept:              "Recursion and Divide-and-Conquer",
			Prerequisites:        []string{"Asymptotic Analysis"},
			DifficultyScore:      0.5,
			EstimatedTimeMinutes: 30,
			Misconceptions:       []string{"Recursion is always slower than iteration", "Every problem splits evenly"},
			Examples:             []string{"Merge sort", "Binary search", "Recurrence trees"},
			TransferChallenges:   []string{"Design a divide-and-conquer solution for a new counting problem"},
		},
		{
			Concept:              "Graph Traversal",
			Prerequisites:        []string{"Recursion and Divide-and-Conquer"},
			DifficultyScore:      0.6,
			EstimatedTimeMinutes: 35,
			Misconceptions:       []string{"BFS and DFS visit the same order", "Traversal requires adjacency matrices"},
			Examples:             []string{"BFS shortest paths", "DFS cycle detection", "Topological sort"},
			TransferChallenges:   []string{"Model a dependency problem as graph traversal"},
		},
	}
}

// genericNodes is the deterministic fallback for unmatched goals: a short
// sequential track derived from the raw goal text.
func genericNodes(goal string) []graph.Node {
	titles := []string{
		fmt.Sprintf("Fundamentals of %s", goal),
		fmt.Sprintf("Core Principles of %s", goal),
		fmt.Sprintf("Applying %s", goal),
		fmt.Sprintf("Common Pitfalls in %s", goal),
		fmt.Sprintf("Advanced %s", goal),
	}
	nodes := make([]graph.Node, len(titles))
	for i, title := range titles {
		n := graph.Node{
			Concept:              title,
			DifficultyScore:      0.3 + 0.1*float64(i),
			EstimatedTimeMinutes: 20 + 5*i,
			Misconceptions:       []string{"Common beginner mistakes"},
			Examples:             []string{"Core definitions", "Basic principles"},
			TransferChallenges:   []string{"Apply concepts to new scenario"},
		}
		if i > 0 {
			n.Prerequisites = []string{titles[i-1]}
		}
		nodes[i] = n
	}
	return nodes
}
