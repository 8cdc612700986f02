package sfen_test

import (
	"testing"

	"github.com/morlock-shogi/structa/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		sfen.Initial,
		"9/9/9/9/4k4/9/9/9/4K4 b - 1",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b 2P3p 12",
	}

	for _, tt := range tests {
		squares, hands, turn, move, err := sfen.Decode(tt)
		require.NoError(t, err)

		assert.Equal(t, tt, sfen.Encode(squares, hands, turn, move))
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"lnsgkgsnl b - 1",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL x - 1",
	}
	for _, tt := range tests {
		_, _, _, _, err := sfen.Decode(tt)
		assert.Error(t, err)
	}
}
