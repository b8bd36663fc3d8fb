package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, homeHead); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := io.WriteString(w, `<p class="notice">`+templ.EscapeString(data.Error)+`</p>`); err != nil {
				return err
			}
		}
		if err := Gallery(data.Sketches).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, homeTail)
		return err
	})
}

// Gallery renders the board of sketch cards, newest first.
func Gallery(sketches []GallerySketch) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="board" class="board">`); err != nil {
			return err
		}
		if len(sketches) == 0 {
			if _, err := io.WriteString(w, `<div id="empty" class="empty">No sketches yet.</div>`); err != nil {
				return err
			}
		}
		for i, sketch := range sketches {
			if err := sketchCard(sketch, i).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func sketchCard(sketch GallerySketch, index int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := templ.EscapeString(sketch.Name)
		html := `<div class="card" data-id="` + strconv.FormatInt(sketch.ID, 10) +
			`" style="` + templ.EscapeString(PlaceSketch(sketch.ID).Style(index)) + `">` +
			`<div class="frame"><img src="` + templ.EscapeString(sketch.Drawing) +
			`" alt="Sketch by ` + name + `" width="100" height="100"/></div>` +
			`<p class="author">` + name + `</p></div>`
		_, err := io.WriteString(w, html)
		return err
	})
}

const homeHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Sketchboard</title>
    <style>
      body { margin: 0; font-family: system-ui, sans-serif; background: #f6efe6; color: #51252c; }
      .shell { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; }
      .hero { text-align: center; margin-bottom: 1.5rem; }
      .panel { background: #fff; border-radius: 1rem; padding: 1rem; box-shadow: 0 8px 24px rgba(0,0,0,.08); margin: 0 auto 2rem; max-width: 340px; }
      .tools { display: flex; gap: .5rem; align-items: center; margin: .5rem 0; flex-wrap: wrap; }
      canvas { border: 2px solid #e5e5e5; border-radius: .75rem; touch-action: none; cursor: crosshair; }
      .board { position: relative; min-height: 800px; background: rgba(255,255,255,.3); border: 10px solid rgba(81,37,44,.3); border-radius: 1rem; padding: 2rem; }
      .card { position: absolute; width: 140px; background: #fff; border-radius: .75rem; padding: 1rem; box-shadow: 0 6px 16px rgba(0,0,0,.12); transition: transform .3s; transform-origin: center center; }
      .card:hover { transform: rotate(0deg) scale(1.1) !important; z-index: 100 !important; }
      .frame img { width: 100%; height: auto; border-radius: .5rem; }
      .author { font-size: .75rem; text-align: center; margin: .5rem 0 0; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
      .empty { text-align: center; color: #999; }
      .notice { color: #b00020; text-align: center; }
    </style>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <h1>Sketchboard</h1>
        <p>Leave your mark! Draw something.</p>
      </header>

      <section class="panel">
        <canvas id="canvas" width="300" height="300"></canvas>
        <div class="tools">
          <input id="color" type="color" value="#000000" aria-label="Brush color"/>
          <input id="size" type="range" min="1" max="20" value="3" aria-label="Brush size"/>
          <button id="eraser" type="button">Eraser</button>
          <button id="clear" type="button">Clear</button>
        </div>
        <form id="saveForm" class="tools">
          <input name="name" placeholder="Your name" autocomplete="name"/>
          <button type="submit">Save sketch</button>
        </form>
        <div id="saveResult" class="notice"></div>
      </section>
`

const homeTail = `
    </main>

    <script>
      const canvas = document.getElementById("canvas");
      const ctx = canvas.getContext("2d");
      const color = document.getElementById("color");
      const size = document.getElementById("size");
      const eraser = document.getElementById("eraser");
      const board = document.getElementById("board");
      const saveForm = document.getElementById("saveForm");
      const saveResult = document.getElementById("saveResult");
      let drawing = false;
      let erasing = false;

      function resetCanvas() {
        ctx.fillStyle = "#ffffff";
        ctx.fillRect(0, 0, canvas.width, canvas.height);
        ctx.lineCap = "round";
        ctx.lineJoin = "round";
      }
      resetCanvas();

      function applyBrush() {
        ctx.strokeStyle = erasing ? "#ffffff" : color.value;
        ctx.lineWidth = erasing ? size.value * 2 : size.value;
      }

      function point(event) {
        const rect = canvas.getBoundingClientRect();
        return { x: event.clientX - rect.left, y: event.clientY - rect.top };
      }

      canvas.addEventListener("pointerdown", (event) => {
        const p = point(event);
        applyBrush();
        ctx.beginPath();
        ctx.moveTo(p.x, p.y);
        drawing = true;
      });
      canvas.addEventListener("pointermove", (event) => {
        if (!drawing) return;
        const p = point(event);
        ctx.lineTo(p.x, p.y);
        ctx.stroke();
      });
      ["pointerup", "pointerleave"].forEach((name) => {
        canvas.addEventListener(name, () => {
          if (!drawing) return;
          ctx.closePath();
          drawing = false;
        });
      });

      eraser.addEventListener("click", () => {
        erasing = !erasing;
        eraser.textContent = erasing ? "Brush" : "Eraser";
      });
      document.getElementById("clear").addEventListener("click", resetCanvas);

      function placement(id) {
        const seed1 = Math.abs(Math.sin(id * 12345) * 10000);
        const seed2 = Math.abs(Math.sin(id * 67890) * 10000);
        const seed3 = Math.abs(Math.sin(id * 54321) * 10000);
        return {
          left: (seed1 % 60) + 5,
          top: (seed2 % 50) + 5,
          rotation: (seed3 % 30) - 15,
          scale: 0.9 + ((seed1 * 7) % 20) / 100
        };
      }

      function addSketch(sketch) {
        if (board.querySelector('[data-id="' + sketch.id + '"]')) return;
        const empty = document.getElementById("empty");
        if (empty) empty.remove();
        const p = placement(sketch.id);
        const card = document.createElement("div");
        card.className = "card";
        card.dataset.id = String(sketch.id);
        card.style.left = p.left + "%";
        card.style.top = p.top + "%";
        card.style.transform = "rotate(" + p.rotation + "deg) scale(" + p.scale + ")";
        card.style.zIndex = 10 + board.children.length;
        const frame = document.createElement("div");
        frame.className = "frame";
        const img = document.createElement("img");
        img.src = sketch.drawing;
        img.alt = "Sketch by " + sketch.name;
        img.width = 100;
        img.height = 100;
        frame.appendChild(img);
        const author = document.createElement("p");
        author.className = "author";
        author.textContent = sketch.name;
        card.appendChild(frame);
        card.appendChild(author);
        board.prepend(card);
      }

      saveForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const name = saveForm.elements.name.value.trim();
        if (!name) {
          saveResult.textContent = "Please enter your name!";
          return;
        }
        saveResult.textContent = "Saving...";
        try {
          const res = await fetch("/api/sketches", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({ name, drawing: canvas.toDataURL() })
          });
          const data = await res.json();
          if (!res.ok) {
            saveResult.textContent = data.error || "Failed to save sketch";
            return;
          }
          addSketch(data);
          saveForm.reset();
          resetCanvas();
          saveResult.textContent = "";
        } catch (err) {
          saveResult.textContent = "Failed to save sketch";
        }
      });

      function connectFeed() {
        const scheme = location.protocol === "https:" ? "wss://" : "ws://";
        const ws = new WebSocket(scheme + location.host + "/ws/sketches");
        ws.onmessage = (event) => {
          const msg = JSON.parse(event.data);
          if (msg.type === "sketch" && msg.sketch) {
            addSketch(msg.sketch);
          } else if (msg.type === "sketches") {
            (msg.sketches || []).slice().reverse().forEach(addSketch);
          }
        };
        ws.onclose = () => setTimeout(connectFeed, 3000);
      }
      connectFeed();
    </script>
  </body>
</html>
`
