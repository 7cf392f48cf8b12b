package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/apmusic/apmusic/internal/models"
	"github.com/apmusic/apmusic/internal/player"
	"github.com/apmusic/apmusic/internal/repositories"
)

type view int

const (
	viewLibrary view = iota
	viewPlaylists
	viewPlaylistSongs
)

type (
	songsLoadedMsg     []models.Song
	playlistsLoadedMsg []models.Playlist

	playlistSongsLoadedMsg struct {
		playlist models.Playlist
		songs    []models.Song
	}

	engineEventMsg player.Event
	subClosedMsg   struct{}
	noteMsg        string
	errMsg         struct{ err error }
)

// Model is the root bubbletea model. It owns three list views (library,
// playlists, playlist songs) and a player bar fed by engine events.
type Model struct {
	songs     *repositories.SongRepository
	playlists *repositories.PlaylistRepository
	engine    *player.Engine
	sub       *player.Subscription
	logger    *log.Logger

	keys keyMap
	help help.Model

	view             view
	songList         list.Model
	playlistList     list.Model
	playlistSongList list.Model

	prompt        textinput.Model
	prompting     bool
	pendingSongID int64

	librarySongs  []models.Song
	playlistSongs []models.Song
	openPlaylist  *models.Playlist

	status player.Status
	note   string

	width  int
	height int
}

func New(songs *repositories.SongRepository, playlists *repositories.PlaylistRepository, engine *player.Engine, logger *log.Logger) *Model {
	prompt := textinput.New()
	prompt.Placeholder = "playlist name"
	prompt.CharLimit = 120

	return &Model{
		songs:            songs,
		playlists:        playlists,
		engine:           engine,
		sub:              engine.Subscribe(),
		logger:           logger,
		keys:             newKeyMap(),
		help:             help.New(),
		songList:         newListModel("Library"),
		playlistList:     newListModel("Playlists"),
		playlistSongList: newListModel("Playlist"),
		prompt:           prompt,
		status:           engine.Status(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSongs(), m.waitForEvent())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := msg.Height - 5
		if listHeight < 3 {
			listHeight = 3
		}
		m.songList.SetSize(msg.Width, listHeight)
		m.playlistList.SetSize(msg.Width, listHeight)
		m.playlistSongList.SetSize(msg.Width, listHeight)
		return m, nil

	case songsLoadedMsg:
		m.librarySongs = msg
		m.songList.SetItems(songItems(msg))
		return m, nil

	case playlistsLoadedMsg:
		m.playlistList.SetItems(playlistItems(msg))
		return m, nil

	case playlistSongsLoadedMsg:
		playlist := msg.playlist
		m.openPlaylist = &playlist
		m.playlistSongs = msg.songs
		m.playlistSongList.Title = playlist.Name
		m.playlistSongList.SetItems(songItems(msg.songs))
		m.view = viewPlaylistSongs
		return m, nil

	case engineEventMsg:
		m.status = m.engine.Status()
		return m, m.waitForEvent()

	case subClosedMsg:
		return m, nil

	case noteMsg:
		m.note = string(msg)
		return m, nil

	case errMsg:
		m.note = styles.err.Render(msg.err.Error())
		m.logger.Error("ui operation failed", "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateActiveList(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	// While the list filter input is focused, keys belong to the list.
	if m.activeList().FilterState() == list.Filtering {
		return m, m.updateActiveList(msg)
	}

	m.note = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.views):
		if m.view == viewLibrary {
			m.view = viewPlaylists
			return m, m.loadPlaylists()
		}
		m.view = viewLibrary
		return m, nil

	case key.Matches(msg, m.keys.back):
		switch m.view {
		case viewPlaylistSongs:
			m.view = viewPlaylists
			return m, m.loadPlaylists()
		case viewPlaylists:
			m.view = viewLibrary
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		return m.handleEnter()

	case key.Matches(msg, m.keys.toggle):
		if m.status.Song == nil {
			return m, nil
		}
		if m.status.Playing {
			return m, m.transport(m.engine.Pause)
		}
		return m, m.transport(m.engine.Resume)

	case key.Matches(msg, m.keys.next):
		return m, m.transport(m.engine.Next)

	case key.Matches(msg, m.keys.prev):
		return m, m.transport(m.engine.Prev)

	case key.Matches(msg, m.keys.seekFwd):
		return m, m.seekBy(5)

	case key.Matches(msg, m.keys.seekBack):
		return m, m.seekBy(-5)

	case key.Matches(msg, m.keys.add):
		if song, ok := m.selectedSong(); ok {
			m.prompting = true
			m.pendingSongID = song.SongID
			m.prompt.SetValue("")
			m.prompt.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.remove):
		if m.view == viewPlaylistSongs && m.openPlaylist != nil {
			if song, ok := m.selectedSong(); ok {
				return m, m.removeFromPlaylist(m.openPlaylist.PlaylistID, song.SongID)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.del):
		if m.view == viewLibrary {
			if song, ok := m.selectedSong(); ok {
				return m, m.deleteSong(song.SongID)
			}
		}
		return m, nil
	}

	return m, m.updateActiveList(msg)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case "enter":
		name := m.prompt.Value()
		songID := m.pendingSongID
		m.prompting = false
		m.prompt.Blur()
		return m, m.addToPlaylist(name, songID)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewLibrary:
		if song, ok := m.selectedSong(); ok {
			return m, m.play(song, m.librarySongs)
		}
	case viewPlaylists:
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.loadPlaylistSongs(item.playlist.PlaylistID)
		}
	case viewPlaylistSongs:
		if song, ok := m.selectedSong(); ok {
			return m, m.play(song, m.playlistSongs)
		}
	}
	return m, nil
}

func (m *Model) selectedSong() (models.Song, bool) {
	var item list.Item
	switch m.view {
	case viewLibrary:
		item = m.songList.SelectedItem()
	case viewPlaylistSongs:
		item = m.playlistSongList.SelectedItem()
	default:
		return models.Song{}, false
	}

	if si, ok := item.(songItem); ok {
		return si.song, true
	}
	return models.Song{}, false
}

func (m *Model) activeList() *list.Model {
	switch m.view {
	case viewPlaylists:
		return &m.playlistList
	case viewPlaylistSongs:
		return &m.playlistSongList
	default:
		return &m.songList
	}
}

func (m *Model) updateActiveList(msg tea.Msg) tea.Cmd {
	active := m.activeList()
	updated, cmd := active.Update(msg)
	*active = updated
	return cmd
}

func (m *Model) View() string {
	body := m.activeList().View()
	if m.prompting {
		body = lipgloss.JoinVertical(lipgloss.Left,
			body,
			styles.title.Render("Add to playlist: ")+m.prompt.View(),
		)
	}

	sections := []string{body}
	if m.note != "" {
		sections = append(sections, m.note)
	}
	sections = append(sections,
		playerBar(m.status, m.width),
		styles.help.Render(m.help.View(m.keys)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Close releases the engine subscription. The engine itself belongs to the
// caller.
func (m *Model) Close() {
	m.sub.Close()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.sub.Events()
		if !ok {
			return subClosedMsg{}
		}
		return engineEventMsg(event)
	}
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.songs.List()
		if err != nil {
			return errMsg{err}
		}
		return songsLoadedMsg(songs)
	}
}

func (m *Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.playlists.List()
		if err != nil {
			return errMsg{err}
		}
		return playlistsLoadedMsg(playlists)
	}
}

func (m *Model) loadPlaylistSongs(playlistID int64) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.playlists.Get(playlistID)
		if err != nil {
			return errMsg{err}
		}
		songs, err := m.playlists.Songs(playlistID)
		if err != nil {
			return errMsg{err}
		}
		return playlistSongsLoadedMsg{playlist: playlist, songs: songs}
	}
}

func (m *Model) play(song models.Song, queue []models.Song) tea.Cmd {
	return func() tea.Msg {
		if err := m.engine.Play(song, queue); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *Model) transport(op func() error) tea.Cmd {
	return func() tea.Msg {
		if err := op(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *Model) seekBy(delta float64) tea.Cmd {
	if m.status.Song == nil {
		return nil
	}
	position := m.status.Progress + delta
	if position < 0 {
		position = 0
	}
	return func() tea.Msg {
		if err := m.engine.Seek(position); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *Model) addToPlaylist(name string, songID int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.playlists.AddSong(name, songID); err != nil {
			return errMsg{err}
		}
		return noteMsg(styles.ok.Render(fmt.Sprintf("added to %q", name)))
	}
}

func (m *Model) removeFromPlaylist(playlistID, songID int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.playlists.RemoveSong(playlistID, songID); err != nil {
			return errMsg{err}
		}
		playlist, err := m.playlists.Get(playlistID)
		if err != nil {
			return errMsg{err}
		}
		songs, err := m.playlists.Songs(playlistID)
		if err != nil {
			return errMsg{err}
		}
		return playlistSongsLoadedMsg{playlist: playlist, songs: songs}
	}
}

func (m *Model) deleteSong(songID int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.songs.Delete(songID); err != nil {
			return errMsg{err}
		}
		songs, err := m.songs.List()
		if err != nil {
			return errMsg{err}
		}
		return songsLoadedMsg(songs)
	}
}
