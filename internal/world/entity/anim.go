package entity

import "fmt"

// Animation — упорядоченный список кадров с длительностью кадра.
// NotifyFinish включает сигнал о завершении последнего кадра.
type Animation struct {
	Name         string
	Frames       []string
	TimePerFrame float64
	Loop         bool
	NotifyFinish bool
}

// FrameNames строит имена кадров name_00 .. name_(count-1)
func FrameNames(name string, count int) []string {
	frames := make([]string, count)
	for i := range frames {
		frames[i] = fmt.Sprintf("%s_%02d", name, i)
	}
	return frames
}

// Animator — проигрыватель анимации одной сущности
type Animator struct {
	anim     *Animation
	frame    int
	elapsed  float64
	signaled bool
}

// NewAnimator создаёт проигрыватель и запускает анимацию
func NewAnimator(anim *Animation) Animator {
	var a Animator
	a.Play(anim)
	return a
}

// Play переключает анимацию: кадр, накопленное время и флаг завершения сбрасываются
func (a *Animator) Play(anim *Animation) {
	a.anim = anim
	a.frame = 0
	a.elapsed = 0
	a.signaled = false
}

// Animation возвращает текущую анимацию
func (a *Animator) Animation() *Animation { return a.anim }

// Frame возвращает индекс текущего кадра
func (a *Animator) Frame() int { return a.frame }

// Image возвращает идентификатор изображения текущего кадра
func (a *Animator) Image() string {
	if a.anim == nil || len(a.anim.Frames) == 0 {
		return ""
	}
	return a.anim.Frames[a.frame]
}

// Advance продвигает анимацию на dt секунд.
// Возвращает true ровно один раз за проигрывание — когда время последнего кадра
// истекло впервые и анимация просит сигнал о завершении. Зацикленная анимация
// затем начинается с нулевого кадра, незацикленная остаётся на последнем.
func (a *Animator) Advance(dt float64) bool {
	if a.anim == nil || len(a.anim.Frames) == 0 {
		return false
	}

	a.elapsed += dt
	if a.elapsed < a.anim.TimePerFrame {
		return false
	}
	a.elapsed = 0

	last := len(a.anim.Frames) - 1
	if a.frame < last {
		a.frame++
		return false
	}

	finished := false
	if a.anim.NotifyFinish && !a.signaled {
		a.signaled = true
		finished = true
	}
	if a.anim.Loop {
		a.frame = 0
	}
	return finished
}
