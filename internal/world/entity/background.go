package entity

// Background — вертикально прокручиваемая стопка слоёв фона.
// Слой i стартует со смещения -i*height; ушедший за низ слой переносится наверх стопки.
type Background struct {
	Speed   float64
	Images  []string
	Offsets []float64
	height  float64
}

// NewBackground создаёт фон из слоёв images для мира высотой height
func NewBackground(speed, height float64, images []string) *Background {
	offsets := make([]float64, len(images))
	for i := range offsets {
		offsets[i] = -float64(i) * height
	}
	return &Background{Speed: speed, Images: images, Offsets: offsets, height: height}
}

// Update сдвигает слои вниз на Speed*dt
func (b *Background) Update(dt float64) {
	inc := b.Speed * dt
	for i := range b.Offsets {
		b.Offsets[i] += inc
		if b.Offsets[i] >= b.height {
			b.Offsets[i] -= b.height * float64(len(b.Offsets))
		}
	}
}
