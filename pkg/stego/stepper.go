package stego

// ImageStepper walks a PixelBuffer row by row, column by column, channel 0 to 2.
type ImageStepper struct {
	x       int
	y       int
	channel int
	width   int
	height  int

	numStepsTaken int
	maxSteps      int // channel visits allowed; 0 means the whole image
}

func makeImageStepper(width int, height int, maxPixels int) *ImageStepper {
	s := &ImageStepper{
		width:  width,
		height: height,
	}
	total := width * height
	if maxPixels > 0 && maxPixels < total {
		total = maxPixels
	}
	s.maxSteps = total * Channels
	return s
}

// offset is the index of the current channel in PixelBuffer.Pix.
func (self *ImageStepper) offset() int {
	return (self.y*self.width+self.x)*Channels + self.channel
}

// done reports whether every channel in range has been visited.
func (self *ImageStepper) done() bool {
	return self.numStepsTaken >= self.maxSteps
}

// step advances to the next channel. It returns true when the move crossed a row boundary.
func (self *ImageStepper) step() bool {
	self.numStepsTaken++
	self.channel++

	if self.channel < Channels {
		return false
	}

	self.channel = 0
	self.x++
	if self.x >= self.width {
		self.x = 0
		self.y++
		return true
	}
	return false
}
