package animation

import "github.com/lumenforge/skelcore/mathkernel"

// float3Pair is the decompressed left/right bracket for one track of a
// translation or scale channel, ready for a lerp.
type float3Pair struct {
	leftRatio, rightRatio float32
	left, right           mathkernel.Vec3
}

// quatPair is the decompressed left/right bracket for one track of the
// rotation channel, ready for a slerp.
type quatPair struct {
	leftRatio, rightRatio float32
	left, right           mathkernel.Quat
}

// float3Channel is the cursor/cache/interp state for one Float3Key stream
// (translation or scale share this, since their wire layout is
// identical). cache holds, per track, the index of the bracketing left
// and right key in the channel's key slice; cursor is how far the scan
// has advanced; dirty marks which tracks' cache entries changed since
// the last refresh and so need their interp pair recomputed.
//
// The original design tracked "outdated" as a bitset over groups of four
// tracks, a SoA-width leftover that reads as a four-track granularity
// when it is really per-track; this keeps one bool per track instead,
// which is the same behaviour without the misleading width.
type float3Channel struct {
	cursor int
	cache  []int32
	interp []float3Pair
	dirty  []bool
}

func newFloat3Channel(maxTracks int) float3Channel {
	return float3Channel{
		cache:  make([]int32, 2*maxTracks),
		interp: make([]float3Pair, maxTracks),
		dirty:  make([]bool, maxTracks),
	}
}

func (c *float3Channel) reset() {
	c.cursor = 0
}

// seed primes the cache with the seeding prefix (§3): the first
// 2*numTracks keys are, per track in order, the left then right
// bracketing key at ratio 0.
func (c *float3Channel) seed(numTracks int) {
	for t := 0; t < numTracks; t++ {
		c.cache[2*t] = int32(t)
		c.cache[2*t+1] = int32(t + numTracks)
		c.dirty[t] = true
	}
	c.cursor = 2 * numTracks
}

// advance scans forward through keys while the current right bracket for
// its track is no longer ahead of r, sliding the window: the old right
// becomes the new left, and the scanned key becomes the new right.
func (c *float3Channel) advance(keys []Float3Key, r float32) {
	for c.cursor < len(keys) {
		k := keys[c.cursor]
		rightIdx := c.cache[2*int(k.Track)+1]
		if keys[rightIdx].Ratio > r {
			break
		}
		c.cache[2*k.Track] = c.cache[2*k.Track+1]
		c.cache[2*k.Track+1] = int32(c.cursor)
		c.dirty[k.Track] = true
		c.cursor++
	}
}

// refresh decompresses the bracket for every track marked dirty.
func (c *float3Channel) refresh(keys []Float3Key, numTracks int) {
	for t := 0; t < numTracks; t++ {
		if !c.dirty[t] {
			continue
		}
		left := keys[c.cache[2*t]]
		right := keys[c.cache[2*t+1]]
		c.interp[t] = float3Pair{
			leftRatio:  left.Ratio,
			rightRatio: right.Ratio,
			left:       left.Decode(),
			right:      right.Decode(),
		}
		c.dirty[t] = false
	}
}

func (c *float3Channel) sample(track int, r float32) mathkernel.Vec3 {
	p := c.interp[track]
	span := p.rightRatio - p.leftRatio
	if span <= 0 {
		return p.left
	}
	u := (r - p.leftRatio) / span
	return p.left.Lerp(p.right, u)
}

// quatChannel mirrors float3Channel for the rotation stream, which uses
// quantised RotationKey entries and a slerp for interpolation.
type quatChannel struct {
	cursor int
	cache  []int32
	interp []quatPair
	dirty  []bool
}

func newQuatChannel(maxTracks int) quatChannel {
	return quatChannel{
		cache:  make([]int32, 2*maxTracks),
		interp: make([]quatPair, maxTracks),
		dirty:  make([]bool, maxTracks),
	}
}

func (c *quatChannel) reset() {
	c.cursor = 0
}

func (c *quatChannel) seed(numTracks int) {
	for t := 0; t < numTracks; t++ {
		c.cache[2*t] = int32(t)
		c.cache[2*t+1] = int32(t + numTracks)
		c.dirty[t] = true
	}
	c.cursor = 2 * numTracks
}

func (c *quatChannel) advance(keys []RotationKey, r float32) {
	for c.cursor < len(keys) {
		k := keys[c.cursor]
		rightIdx := c.cache[2*int(k.Track)+1]
		if keys[rightIdx].Ratio > r {
			break
		}
		c.cache[2*k.Track] = c.cache[2*k.Track+1]
		c.cache[2*k.Track+1] = int32(c.cursor)
		c.dirty[k.Track] = true
		c.cursor++
	}
}

func (c *quatChannel) refresh(keys []RotationKey, numTracks int) {
	for t := 0; t < numTracks; t++ {
		if !c.dirty[t] {
			continue
		}
		left := keys[c.cache[2*t]]
		right := keys[c.cache[2*t+1]]
		c.interp[t] = quatPair{
			leftRatio:  left.Ratio,
			rightRatio: right.Ratio,
			left:       left.Decode(),
			right:      right.Decode(),
		}
		c.dirty[t] = false
	}
}

func (c *quatChannel) sample(track int, r float32) mathkernel.Quat {
	p := c.interp[track]
	span := p.rightRatio - p.leftRatio
	if span <= 0 {
		return p.left
	}
	u := (r - p.leftRatio) / span
	return p.left.Slerp(p.right, u)
}

// Context is per-thread cursor-cache state for sampling one Animation
// (§4.1, §5: exactly one Context per concurrent sampling thread, never
// shared). Reusing a Context across consecutive, increasing-ratio
// SamplingJob calls against the same Animation is what makes sampling
// cheap: each call only scans forward from where the last one left off.
type Context struct {
	maxTracks   int
	animation   *Animation
	prevRatio   float32
	translation float3Channel
	rotation    quatChannel
	scale       float3Channel
}

// NewContext allocates a Context sized for clips with up to maxTracks
// joints.
func NewContext(maxTracks int) *Context {
	return &Context{
		maxTracks:   maxTracks,
		translation: newFloat3Channel(maxTracks),
		rotation:    newQuatChannel(maxTracks),
		scale:       newFloat3Channel(maxTracks),
	}
}

// MaxTracks returns the track capacity this Context was built for.
func (c *Context) MaxTracks() int {
	return c.maxTracks
}

// invalidate resets all three channel cursors to the start of the
// seeding prefix whenever the Animation pointer changes or the ratio
// rewinds relative to the previous call — both cases make the existing
// cache meaningless.
func (c *Context) invalidate(a *Animation, r float32) {
	if c.animation != a || r < c.prevRatio {
		c.translation.reset()
		c.rotation.reset()
		c.scale.reset()
		c.animation = a
	}
	c.prevRatio = r
}
