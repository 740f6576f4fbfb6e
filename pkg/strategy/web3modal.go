package strategy

import (
	"time"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// NewWeb3ModalStrategy returns the legacy Web3Modal replacement tables.
// The Web3Modal component maps straight onto the modal; the factory call
// becomes a provider block.
func NewWeb3ModalStrategy(targetVersion string, estimate time.Duration) ReplacementStrategy {
	if targetVersion == "" {
		targetVersion = DefaultTargetVersion
	}
	if estimate == 0 {
		estimate = 12 * time.Minute
	}
	return &tableStrategy{
		name:         "web3modal",
		tag:          types.TagWeb3Modal,
		fingerprints: []string{"web3modal"},
		importSymbols: map[string]string{
			"Web3Modal":            "ParaModal",
			"createWeb3Modal":      "ParaProvider",
			"useWeb3Modal":         "useModal",
			"useWeb3ModalAccount":  "useAccount",
			"useWeb3ModalProvider": "useClient",
			"useWeb3ModalState":    "useModal",
			"useDisconnect":        "useLogout",
		},
		componentMap: map[string]string{
			"Web3Modal":       "ParaModal",
			"createWeb3Modal": "ParaProvider",
		},
		hookMap: map[string]string{
			"useWeb3Modal":         "useModal",
			"useWeb3ModalAccount":  "useAccount",
			"useWeb3ModalProvider": "useClient",
			"useWeb3ModalState":    "useModal",
			"useDisconnect":        "useLogout",
		},
		estimate:      estimate,
		targetVersion: targetVersion,
	}
}
