package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradeByPoints(t *testing.T) {
	require.Equal(t, GradeD, GradeByPoints(0))
	require.Equal(t, GradeD, GradeByPoints(99))
	require.Equal(t, GradeC, GradeByPoints(100))
	require.Equal(t, GradeC, GradeByPoints(299))
	require.Equal(t, GradeB, GradeByPoints(300))
	require.Equal(t, GradeB, GradeByPoints(599))
	require.Equal(t, GradeA, GradeByPoints(600))
	// отрицательный баланс после штрафов не понижает ниже D
	require.Equal(t, GradeD, GradeByPoints(-50))
}

func TestGradeAtLeast(t *testing.T) {
	require.True(t, GradeA.AtLeast(GradeD))
	require.True(t, GradeB.AtLeast(GradeB))
	require.False(t, GradeD.AtLeast(GradeC))
	require.False(t, GradeC.AtLeast(GradeA))
}

func TestBasePointsByMinGrade(t *testing.T) {
	require.Equal(t, 10, BasePointsByMinGrade(GradeD))
	require.Equal(t, 25, BasePointsByMinGrade(GradeC))
	require.Equal(t, 50, BasePointsByMinGrade(GradeB))
	require.Equal(t, 100, BasePointsByMinGrade(GradeA))
	// неизвестный грейд трактуется как D
	require.Equal(t, 10, BasePointsByMinGrade(Grade("X")))
}
