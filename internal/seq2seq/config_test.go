package seq2seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainConfig_Defaults(t *testing.T) {
	c := TrainConfig{TeacherForcing: -1}.fillDefaults()
	assert.Equal(t, 10, c.Epochs)
	assert.Equal(t, float32(0.001), c.LR)
	assert.Equal(t, float32(0.5), c.TeacherForcing)
}

func TestTrainConfig_TeacherForcingZeroIsHonored(t *testing.T) {
	c := TrainConfig{Epochs: 1, LR: 0.01, TeacherForcing: 0}.fillDefaults()
	assert.Equal(t, float32(0), c.TeacherForcing)
}
