package network

import (
	"fmt"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
)

func interaction(peer, mechanism, target string) drug.InteractionEdge {
	e := drug.InteractionEdge{SelectedDrug: "Aspirin", InteractingDrug: peer, Mechanism: mechanism}
	if target != "" {
		e.TargetName = &target
	}
	return e
}

func aspirinGraph() *domainNet.Graph {
	g, _ := domainNet.Build("Aspirin", []drug.InteractionEdge{
		interaction("IBUPROFEN", "Cyclooxygenase inhibitor", "Cyclooxygenase-1"),
		interaction("NAPROXEN", "Cyclooxygenase inhibitor", "Cyclooxygenase-2"),
		interaction("CLOPIDOGREL", "Platelet aggregation inhibitor", ""),
	})
	return g
}

func wideGraph(leaves int) *domainNet.Graph {
	rows := make([]drug.InteractionEdge, 0, leaves)
	for i := 0; i < leaves; i++ {
		rows = append(rows, interaction(fmt.Sprintf("DRUG-%02d", i), fmt.Sprintf("Mechanism %d", i%4), ""))
	}
	g, _ := domainNet.Build("Aspirin", rows)
	return g
}

//Personal.AI order the ending
