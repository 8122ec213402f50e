// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and handles all the memory
// reads and writes via the IOBus interface.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
type MMU struct {
	// 64kB address space, every address is owned by exactly one component
	raw [65536]*types.Address

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	Video IOBus

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM ram.RAM

	// 0xFF00 - 0xFF7F - I/O Registers
	IO IOBus

	// 0xFF46 - OAM DMA source page
	dma uint8

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM ram.RAM

	// 0xFFFF - interrupt enable register
	irq *interrupts.Service

	Log log.Logger
}

// NewMMU returns a new MMU mapping the given components into the
// address space.
func NewMMU(cart cartridge.Cartridge, video IOBus, io IOBus, irq *interrupts.Service, logger log.Logger) *MMU {
	m := &MMU{
		Cart:  cart,
		Video: video,
		IO:    io,
		irq:   irq,
		wRAM:  ram.NewRAM(0x2000),
		zRAM:  ram.NewRAM(0x7F),
		Log:   logger,
	}

	m.init()

	return m
}

func (m *MMU) init() {
	addresses := []types.Address{
		{Read: m.readCart, Write: m.Cart.Write},
		{Read: m.Cart.Read, Write: m.Cart.Write},
		{Read: m.Video.Read, Write: m.Video.Write},
		{Read: readOffset(m.wRAM.Read, 0xC000), Write: writeOffset(m.wRAM.Write, 0xC000)},
		{Read: readOffset(m.wRAM.Read, 0xE000), Write: writeOffset(m.wRAM.Write, 0xE000)},
		{Read: func(uint16) uint8 { return 0 }, Write: func(uint16, uint8) {}},
		{Read: m.IO.Read, Write: m.IO.Write},
		{Read: readOffset(m.zRAM.Read, 0xFF80), Write: writeOffset(m.zRAM.Write, 0xFF80)},
	}

	// 0x0000 - 0x7FFF - ROM (32kB)
	m.mapRange(0x0000, 0x00FF, &addresses[0])
	m.mapRange(0x0100, 0x7FFF, &addresses[1])

	// 0x8000 - 0x9FFF - VRAM (8kB)
	m.mapRange(0x8000, 0x9FFF, &addresses[2])

	// 0xA000 - 0xBFFF - external RAM (8kB)
	m.mapRange(0xA000, 0xBFFF, &addresses[1])

	// 0xC000 - 0xDFFF - internal RAM (8kB)
	m.mapRange(0xC000, 0xDFFF, &addresses[3])

	// 0xE000 - 0xFDFF - echo of internal RAM (7.5kB)
	m.mapRange(0xE000, 0xFDFF, &addresses[4])

	// 0xFE00 - 0xFE9F - sprite attribute table (OAM) (160B)
	m.mapRange(0xFE00, 0xFE9F, &addresses[2])

	// 0xFEA0 - 0xFEFF - unusable memory (96B)
	m.mapRange(0xFEA0, 0xFEFF, &addresses[5])

	// 0xFF00 - 0xFF7F - I/O (128B)
	m.mapRange(0xFF00, 0xFF7F, &addresses[6])
	m.raw[types.DMA] = &types.Address{
		Read:  func(uint16) uint8 { return m.dma },
		Write: func(_ uint16, v uint8) { m.transfer(v) },
	}
	m.raw[types.BDIS] = &types.Address{
		Read: m.IO.Read,
		Write: func(address uint16, v uint8) {
			if v != 0 {
				m.bootROMDone = true
			}
			m.IO.Write(address, v)
		},
	}

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	m.mapRange(0xFF80, 0xFFFE, &addresses[7])

	// 0xFFFF - interrupt enable register
	m.raw[types.IE] = &types.Address{
		Read:  func(uint16) uint8 { return m.irq.Enable },
		Write: func(_ uint16, v uint8) { m.irq.Enable = v },
	}

	for address, a := range m.raw {
		if a == nil {
			panic(fmt.Sprintf("mmu: address 0x%04X is not mapped", address))
		}
	}
}

func (m *MMU) mapRange(from, to uint16, address *types.Address) {
	for i := uint32(from); i <= uint32(to); i++ {
		m.raw[i] = address
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// SetBootROM maps the boot ROM over 0x0000 - 0x00FF until a
// non-zero value is written to types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = false
}

func (m *MMU) readCart(address uint16) uint8 {
	if m.bootROM != nil && !m.bootROMDone {
		return m.bootROM.Read(address)
	}

	return m.Cart.Read(address)
}

// transfer copies 0xA0 bytes from the page given by source into OAM.
// The copy goes through the MMU, so the source may be any readable
// region.
func (m *MMU) transfer(source uint8) {
	m.dma = source
	from := uint16(source) << 8
	m.Log.Debugf("dma: 0x%04X-0x%04X -> OAM", from, from+0x9F)

	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xFE00+i, m.Read(from+i))
	}
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the component owning the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}
